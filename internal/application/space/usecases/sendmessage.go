package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/ba6/gatekeeper/internal/domain/space"
	"github.com/ba6/gatekeeper/internal/shared/errors"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

type SendMessageCommand struct {
	SpaceID  string
	UserID   string
	Body     string
	ThreadID string
}

type SendMessageResult struct {
	MessageID string
	SpaceID   string
	ThreadID  *string
	CreatedAt time.Time
}

type SendMessageUseCase struct {
	gates       GateAccessChecker
	memberRepo  space.MemberRepository
	threadRepo  space.ThreadRepository
	messageRepo space.MessageRepository
	logger      logger.Interface
}

func NewSendMessageUseCase(
	gates GateAccessChecker,
	memberRepo space.MemberRepository,
	threadRepo space.ThreadRepository,
	messageRepo space.MessageRepository,
	logger logger.Interface,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		gates:       gates,
		memberRepo:  memberRepo,
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// Execute posts a message to the space, or to one of its threads when
// ThreadID is set. Only members may post.
func (uc *SendMessageUseCase) Execute(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error) {
	var threadID *string
	if id := strings.TrimSpace(cmd.ThreadID); id != "" {
		threadID = &id
	}

	msg, err := space.NewMessage(cmd.SpaceID, cmd.UserID, cmd.Body, threadID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.gates.RequireGateAccess(ctx, spaceAccessRequest(cmd.UserID, cmd.SpaceID, space.ActionSendMessage)); err != nil {
		return nil, err
	}

	if err := requireMembership(ctx, uc.memberRepo, cmd.SpaceID, cmd.UserID); err != nil {
		return nil, err
	}

	if threadID != nil {
		thread, err := uc.threadRepo.GetByID(ctx, *threadID)
		if err != nil {
			return nil, err
		}
		if thread == nil || thread.SpaceID() != cmd.SpaceID {
			return nil, errors.NewNotFoundError("thread not found", space.ErrThreadNotInSpace.Error())
		}
	}

	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	uc.logger.Infow("space message sent",
		"space_id", cmd.SpaceID,
		"user_id", cmd.UserID,
		"message_id", msg.ID(),
	)

	return &SendMessageResult{
		MessageID: msg.ID(),
		SpaceID:   msg.SpaceID(),
		ThreadID:  msg.ThreadID(),
		CreatedAt: msg.CreatedAt(),
	}, nil
}

func requireMembership(ctx context.Context, memberRepo space.MemberRepository, spaceID, userID string) error {
	member, err := memberRepo.Get(ctx, spaceID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return errors.NewForbiddenError("join the space first")
	}
	return nil
}
