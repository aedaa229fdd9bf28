package common

import (
	"github.com/gin-gonic/gin"

	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/shared/errors"
	"github.com/ba6/gatekeeper/internal/shared/utils"
)

// GateDeniedResponse is the body returned when a gate refuses an action
type GateDeniedResponse struct {
	OK      bool   `json:"ok"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	GateID  string `json:"gate_id,omitempty"`
}

// RespondError writes err to the client. Gate denials keep their reason code
// and status; malformed access requests become 400; everything else goes
// through the standard error envelope.
func RespondError(c *gin.Context, err error) {
	if gateErr, ok := gate.AsGateAccessError(err); ok {
		c.JSON(gateErr.Status, GateDeniedResponse{
			OK:      false,
			Reason:  gateErr.Reason.String(),
			Message: gateErr.Message,
			GateID:  gateErr.GateID,
		})
		return
	}

	if gate.IsRequestError(err) {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	utils.ErrorResponseWithError(c, err)
}
