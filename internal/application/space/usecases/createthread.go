package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/ba6/gatekeeper/internal/domain/space"
	"github.com/ba6/gatekeeper/internal/shared/errors"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

type CreateThreadCommand struct {
	SpaceID string
	UserID  string
	Title   string
	// Body is the optional opening message
	Body string
}

type CreateThreadResult struct {
	ThreadID         string
	SpaceID          string
	Title            string
	OpeningMessageID string
	CreatedAt        time.Time
}

type CreateThreadUseCase struct {
	gates       GateAccessChecker
	memberRepo  space.MemberRepository
	threadRepo  space.ThreadRepository
	messageRepo space.MessageRepository
	txRunner    TransactionRunner
	logger      logger.Interface
}

func NewCreateThreadUseCase(
	gates GateAccessChecker,
	memberRepo space.MemberRepository,
	threadRepo space.ThreadRepository,
	messageRepo space.MessageRepository,
	txRunner TransactionRunner,
	logger logger.Interface,
) *CreateThreadUseCase {
	return &CreateThreadUseCase{
		gates:       gates,
		memberRepo:  memberRepo,
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		txRunner:    txRunner,
		logger:      logger,
	}
}

// Execute creates a thread and its opening message atomically
func (uc *CreateThreadUseCase) Execute(ctx context.Context, cmd CreateThreadCommand) (*CreateThreadResult, error) {
	thread, err := space.NewThread(cmd.SpaceID, cmd.UserID, cmd.Title)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var opening *space.Message
	if strings.TrimSpace(cmd.Body) != "" {
		threadID := thread.ID()
		opening, err = space.NewMessage(cmd.SpaceID, cmd.UserID, cmd.Body, &threadID)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.gates.RequireGateAccess(ctx, spaceAccessRequest(cmd.UserID, cmd.SpaceID, space.ActionCreateThread)); err != nil {
		return nil, err
	}

	if err := requireMembership(ctx, uc.memberRepo, cmd.SpaceID, cmd.UserID); err != nil {
		return nil, err
	}

	err = uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.threadRepo.Create(txCtx, thread); err != nil {
			return err
		}
		if opening != nil {
			return uc.messageRepo.Create(txCtx, opening)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create thread", "space_id", cmd.SpaceID, "error", err)
		return nil, err
	}

	uc.logger.Infow("space thread created",
		"space_id", cmd.SpaceID,
		"user_id", cmd.UserID,
		"thread_id", thread.ID(),
	)

	result := &CreateThreadResult{
		ThreadID:  thread.ID(),
		SpaceID:   thread.SpaceID(),
		Title:     thread.Title(),
		CreatedAt: thread.CreatedAt(),
	}
	if opening != nil {
		result.OpeningMessageID = opening.ID()
	}
	return result, nil
}
