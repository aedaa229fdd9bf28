package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ba6/gatekeeper/internal/application/gateaccess/dto"
	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/interfaces/http/handlers/testutil"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

type mockInspector struct {
	InspectTargetFunc func(ctx context.Context, targetType gate.TargetType, targetID string) (*dto.TargetValidationDTO, error)
	callCount         int
}

func (m *mockInspector) InspectTarget(ctx context.Context, targetType gate.TargetType, targetID string) (*dto.TargetValidationDTO, error) {
	m.callCount++
	return m.InspectTargetFunc(ctx, targetType, targetID)
}

func TestGateValidationHandler_GetTargetValidation(t *testing.T) {
	inspector := &mockInspector{InspectTargetFunc: func(ctx context.Context, targetType gate.TargetType, targetID string) (*dto.TargetValidationDTO, error) {
		return &dto.TargetValidationDTO{
			TargetType: targetType.String(),
			TargetID:   targetID,
			Gates:      []dto.GateDTO{{ID: "gate-1", GateType: "pay_gate"}, {ID: "gate-2", GateType: "pay_gate"}},
			Issues: []gate.Issue{{
				Severity:     gate.SeverityWarning,
				Code:         gate.IssueAmbiguousPayGate,
				TargetType:   targetType,
				TargetID:     targetID,
				GateID:       "gate-1",
				Action:       "join",
				OtherGateIDs: []string{"gate-2"},
			}},
		}, nil
	}}
	h := NewGateValidationHandler(inspector, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/gates/space/space-1/validation", nil)
	testutil.SetURLParam(c, "target_type", "space")
	testutil.SetURLParam(c, "target_id", "space-1")

	h.GetTargetValidation(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var result dto.TargetValidationDTO
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "space", result.TargetType)
	assert.Len(t, result.Gates, 2)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, []string{"gate-2"}, result.Issues[0].OtherGateIDs)
}

func TestGateValidationHandler_InvalidTargetType(t *testing.T) {
	inspector := &mockInspector{InspectTargetFunc: func(ctx context.Context, targetType gate.TargetType, targetID string) (*dto.TargetValidationDTO, error) {
		return nil, fmt.Errorf("%w: %s", gate.ErrInvalidTargetType, targetType)
	}}
	h := NewGateValidationHandler(inspector, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/gates/profile/p1/validation", nil)
	testutil.SetURLParam(c, "target_type", "profile")
	testutil.SetURLParam(c, "target_id", "p1")

	h.GetTargetValidation(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGateValidationHandler_LookupFailure(t *testing.T) {
	inspector := &mockInspector{InspectTargetFunc: func(ctx context.Context, targetType gate.TargetType, targetID string) (*dto.TargetValidationDTO, error) {
		return nil, fmt.Errorf("failed to list pay gates: %w", context.DeadlineExceeded)
	}}
	h := NewGateValidationHandler(inspector, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/gates/feed/f1/validation", nil)
	testutil.SetURLParam(c, "target_type", "feed")
	testutil.SetURLParam(c, "target_id", "f1")

	h.GetTargetValidation(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, inspector.callCount)
}
