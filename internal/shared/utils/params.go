package utils

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ba6/gatekeeper/internal/shared/constants"
	"github.com/ba6/gatekeeper/internal/shared/errors"
)

// ParseIDParam reads a required path parameter.
// entityName is used in error messages (e.g., "space", "thread").
func ParseIDParam(c *gin.Context, paramName, entityName string) (string, error) {
	value := strings.TrimSpace(c.Param(paramName))
	if value == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	if len(value) > 255 {
		return "", errors.NewValidationError(entityName + " ID is too long")
	}
	return value, nil
}

// GetUserID returns the authenticated user ID set by the auth middleware
func GetUserID(c *gin.Context) (string, error) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}
	return userID, nil
}
