package gate

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ba6/gatekeeper/internal/application/gateaccess/dto"
	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/interfaces/http/handlers/common"
	"github.com/ba6/gatekeeper/internal/shared/logger"
	"github.com/ba6/gatekeeper/internal/shared/utils"
)

// AccessEvaluator is satisfied by the gate access resolver
type AccessEvaluator interface {
	Evaluate(ctx context.Context, req gate.AccessRequest) (gate.Decision, error)
}

// EntitlementLister is satisfied by the entitlement service
type EntitlementLister interface {
	ListLookupKeys(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	evaluator    AccessEvaluator
	entitlements EntitlementLister
	logger       logger.Interface
}

func NewHandler(evaluator AccessEvaluator, entitlements EntitlementLister, logger logger.Interface) *Handler {
	return &Handler{
		evaluator:    evaluator,
		entitlements: entitlements,
		logger:       logger,
	}
}

// CheckAccess handles POST /api/gates/check. It evaluates the target's gates
// without performing the action, so a denial is reported in a 200 body along
// with the user's active entitlements.
func (h *Handler) CheckAccess(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.CheckGateAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for gate check", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	decision, err := h.evaluator.Evaluate(c.Request.Context(), gate.AccessRequest{
		UserID:     userID,
		TargetType: gate.TargetType(req.TargetType),
		TargetID:   req.TargetID,
		Action:     req.Action,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	keys, err := h.entitlements.ListLookupKeys(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("failed to list entitlements for gate check", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result := dto.ToGateDecisionDTO(req.Action, decision)
	result.Entitlements = keys
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
