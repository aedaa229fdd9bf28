package usecases

import (
	"context"

	"github.com/ba6/gatekeeper/internal/domain/gate"
)

// GateAccessChecker is satisfied by the gate access resolver
type GateAccessChecker interface {
	RequireGateAccess(ctx context.Context, req gate.AccessRequest) error
}

// TransactionRunner runs fn inside a database transaction
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type JoinSpaceExecutor interface {
	Execute(ctx context.Context, cmd JoinSpaceCommand) (*JoinSpaceResult, error)
}

type SendMessageExecutor interface {
	Execute(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error)
}

type CreateThreadExecutor interface {
	Execute(ctx context.Context, cmd CreateThreadCommand) (*CreateThreadResult, error)
}

func spaceAccessRequest(userID, spaceID, action string) gate.AccessRequest {
	return gate.AccessRequest{
		UserID:     userID,
		TargetType: gate.TargetTypeSpace,
		TargetID:   spaceID,
		Action:     action,
	}
}
