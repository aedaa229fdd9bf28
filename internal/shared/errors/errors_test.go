package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"payment required", NewPaymentRequiredError("pay"), ErrorTypePaymentRequired, http.StatusPaymentRequired},
		{"rate limited", NewRateLimitedError("slow down"), ErrorTypeRateLimited, http.StatusTooManyRequests},
		{"not implemented", NewNotImplementedError("later"), ErrorTypeNotImplemented, http.StatusNotImplemented},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "validation_error: bad input", NewValidationError("bad input").Error())
	assert.Equal(t, "validation_error: bad input (field x)", NewValidationError("bad input", "field x").Error())
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("use case failed: %w", NewNotFoundError("space not found"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.Nil(t, GetAppError(errors.New("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(errors.New(`ERROR: duplicate key value violates unique constraint "space_members_pkey"`)))
	assert.True(t, IsDuplicateError(errors.New("UNIQUE constraint failed: space_members.space_id")))
	assert.False(t, IsDuplicateError(errors.New("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}
