package space

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ba6/gatekeeper/internal/application/space/usecases"
	"github.com/ba6/gatekeeper/internal/interfaces/http/handlers/common"
	"github.com/ba6/gatekeeper/internal/shared/logger"
	"github.com/ba6/gatekeeper/internal/shared/utils"
)

type SendMessageRequest struct {
	Body     string `json:"body" binding:"required,max=4000"`
	ThreadID string `json:"thread_id,omitempty" binding:"omitempty,max=255"`
}

type CreateThreadRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Body  string `json:"body,omitempty" binding:"omitempty,max=4000"`
}

type Handler struct {
	joinSpaceUC    usecases.JoinSpaceExecutor
	sendMessageUC  usecases.SendMessageExecutor
	createThreadUC usecases.CreateThreadExecutor
	logger         logger.Interface
}

func NewHandler(
	joinSpaceUC usecases.JoinSpaceExecutor,
	sendMessageUC usecases.SendMessageExecutor,
	createThreadUC usecases.CreateThreadExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		joinSpaceUC:    joinSpaceUC,
		sendMessageUC:  sendMessageUC,
		createThreadUC: createThreadUC,
		logger:         logger,
	}
}

// JoinSpace handles POST /api/spaces/:id/join
func (h *Handler) JoinSpace(c *gin.Context) {
	userID, spaceID, ok := h.parseRequest(c)
	if !ok {
		return
	}

	result, err := h.joinSpaceUC.Execute(c.Request.Context(), usecases.JoinSpaceCommand{
		SpaceID: spaceID,
		UserID:  userID,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	if result.AlreadyMember {
		utils.SuccessResponse(c, http.StatusOK, "Already a member of this space", result)
		return
	}
	utils.CreatedResponse(c, result, "Joined space successfully")
}

// SendMessage handles POST /api/spaces/:id/messages
func (h *Handler) SendMessage(c *gin.Context) {
	userID, spaceID, ok := h.parseRequest(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for send message", "error", err, "space_id", spaceID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.sendMessageUC.Execute(c.Request.Context(), usecases.SendMessageCommand{
		SpaceID:  spaceID,
		UserID:   userID,
		Body:     req.Body,
		ThreadID: req.ThreadID,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message sent")
}

// CreateThread handles POST /api/spaces/:id/threads
func (h *Handler) CreateThread(c *gin.Context) {
	userID, spaceID, ok := h.parseRequest(c)
	if !ok {
		return
	}

	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create thread", "error", err, "space_id", spaceID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createThreadUC.Execute(c.Request.Context(), usecases.CreateThreadCommand{
		SpaceID: spaceID,
		UserID:  userID,
		Title:   req.Title,
		Body:    req.Body,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Thread created")
}

func (h *Handler) parseRequest(c *gin.Context) (userID, spaceID string, ok bool) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", "", false
	}

	spaceID, err = utils.ParseIDParam(c, "id", "space")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", "", false
	}

	return userID, spaceID, true
}
