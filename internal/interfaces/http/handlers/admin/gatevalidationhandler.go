package admin

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

// GateInspector is satisfied by gateaccess.Inspector
type GateInspector interface {
	InspectTarget(ctx context.Context, targetType gate.TargetType, targetID string) (*dto.TargetValidationDTO, error)
}

type GateValidationHandler struct {
	inspector GateInspector
	logger    logger.Interface
}

func NewGateValidationHandler(inspector GateInspector, logger logger.Interface) *GateValidationHandler {
	return &GateValidationHandler{
		inspector: inspector,
		logger:    logger,
	}
}

// GetTargetValidation handles GET /api/admin/gates/:target_type/:target_id/validation
func (h *GateValidationHandler) GetTargetValidation(c *gin.Context) {
	targetID, err := utils.ParseIDParam(c, "target_id", "target")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	targetType := gate.TargetType(c.Param("target_type"))

	result, err := h.inspector.InspectTarget(c.Request.Context(), targetType, targetID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	if result.HasErrors {
		h.logger.Warnw("gate configuration has errors",
			"target_type", targetType,
			"target_id", targetID,
			"issues", len(result.Issues),
		)
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
