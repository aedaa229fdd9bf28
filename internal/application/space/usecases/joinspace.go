package usecases

import (
	"context"
	"time"

	"github.com/ba6/gatekeeper/internal/domain/space"
	"github.com/ba6/gatekeeper/internal/shared/errors"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

type JoinSpaceCommand struct {
	SpaceID string
	UserID  string
}

type JoinSpaceResult struct {
	SpaceID       string
	UserID        string
	Role          string
	AlreadyMember bool
	JoinedAt      time.Time
}

type JoinSpaceUseCase struct {
	gates      GateAccessChecker
	memberRepo space.MemberRepository
	logger     logger.Interface
}

func NewJoinSpaceUseCase(
	gates GateAccessChecker,
	memberRepo space.MemberRepository,
	logger logger.Interface,
) *JoinSpaceUseCase {
	return &JoinSpaceUseCase{
		gates:      gates,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// Execute joins the user to the space. Joining a space twice succeeds and
// reports the existing membership.
func (uc *JoinSpaceUseCase) Execute(ctx context.Context, cmd JoinSpaceCommand) (*JoinSpaceResult, error) {
	member, err := space.NewMember(cmd.SpaceID, cmd.UserID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.gates.RequireGateAccess(ctx, spaceAccessRequest(cmd.UserID, cmd.SpaceID, space.ActionJoin)); err != nil {
		return nil, err
	}

	created, err := uc.memberRepo.Add(ctx, member)
	if err != nil {
		return nil, err
	}

	if !created {
		existing, err := uc.memberRepo.Get(ctx, cmd.SpaceID, cmd.UserID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			member = existing
		}
		uc.logger.Debugw("user already a space member", "space_id", cmd.SpaceID, "user_id", cmd.UserID)
	} else {
		uc.logger.Infow("user joined space", "space_id", cmd.SpaceID, "user_id", cmd.UserID)
	}

	return &JoinSpaceResult{
		SpaceID:       member.SpaceID(),
		UserID:        member.UserID(),
		Role:          member.Role(),
		AlreadyMember: !created,
		JoinedAt:      member.JoinedAt(),
	}, nil
}
