package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/domain/space"
	apperrors "github.com/ba6/gatekeeper/internal/shared/errors"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

func newSendMessageUseCase(gates *mockGateAccessChecker, members *mockMemberRepository, threads *mockThreadRepository, messages *mockMessageRepository) *SendMessageUseCase {
	return NewSendMessageUseCase(gates, members, threads, messages, logger.NewNopLogger())
}

func TestSendMessageUseCase_Execute(t *testing.T) {
	gates := &mockGateAccessChecker{}
	messages := &mockMessageRepository{}
	uc := newSendMessageUseCase(gates, &mockMemberRepository{GetFunc: memberOf("space-1")}, &mockThreadRepository{}, messages)

	result, err := uc.Execute(context.Background(), SendMessageCommand{SpaceID: "space-1", UserID: "user-1", Body: "gm"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.MessageID)
	assert.Nil(t, result.ThreadID)
	require.Len(t, messages.created, 1)
	assert.Equal(t, "gm", messages.created[0].Body())
	require.Len(t, gates.requests, 1)
	assert.Equal(t, space.ActionSendMessage, gates.requests[0].Action)
}

func TestSendMessageUseCase_IntoThread(t *testing.T) {
	thread, err := space.NewThread("space-1", "user-2", "Roadmap")
	require.NoError(t, err)
	threads := &mockThreadRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*space.Thread, error) {
			if id == thread.ID() {
				return thread, nil
			}
			return nil, nil
		},
	}
	messages := &mockMessageRepository{}
	uc := newSendMessageUseCase(&mockGateAccessChecker{}, &mockMemberRepository{GetFunc: memberOf("space-1")}, threads, messages)

	result, err := uc.Execute(context.Background(), SendMessageCommand{SpaceID: "space-1", UserID: "user-1", Body: "+1", ThreadID: thread.ID()})
	require.NoError(t, err)
	require.NotNil(t, result.ThreadID)
	assert.Equal(t, thread.ID(), *result.ThreadID)

	_, err = uc.Execute(context.Background(), SendMessageCommand{SpaceID: "space-1", UserID: "user-1", Body: "+1", ThreadID: "missing"})
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.Len(t, messages.created, 1)
}

func TestSendMessageUseCase_ThreadFromOtherSpace(t *testing.T) {
	thread, err := space.NewThread("space-2", "user-2", "Elsewhere")
	require.NoError(t, err)
	threads := &mockThreadRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*space.Thread, error) {
			return thread, nil
		},
	}
	messages := &mockMessageRepository{}
	uc := newSendMessageUseCase(&mockGateAccessChecker{}, &mockMemberRepository{GetFunc: memberOf("space-1")}, threads, messages)

	_, err = uc.Execute(context.Background(), SendMessageCommand{SpaceID: "space-1", UserID: "user-1", Body: "hi", ThreadID: thread.ID()})

	assert.True(t, apperrors.IsNotFoundError(err))
	assert.Empty(t, messages.created)
}

func TestSendMessageUseCase_RequiresMembership(t *testing.T) {
	messages := &mockMessageRepository{}
	uc := newSendMessageUseCase(&mockGateAccessChecker{}, &mockMemberRepository{}, &mockThreadRepository{}, messages)

	_, err := uc.Execute(context.Background(), SendMessageCommand{SpaceID: "space-1", UserID: "user-1", Body: "hi"})

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	assert.Empty(t, messages.created)
}

func TestSendMessageUseCase_TokenGateDenies(t *testing.T) {
	messages := &mockMessageRepository{}
	uc := newSendMessageUseCase(
		&mockGateAccessChecker{RequireGateAccessFunc: denyWith(gate.ReasonTokenGateNotImplemented)},
		&mockMemberRepository{GetFunc: memberOf("space-1")},
		&mockThreadRepository{},
		messages,
	)

	_, err := uc.Execute(context.Background(), SendMessageCommand{SpaceID: "space-1", UserID: "user-1", Body: "hi"})

	assert.True(t, gate.IsReason(err, gate.ReasonTokenGateNotImplemented))
	assert.Empty(t, messages.created)
}

func TestSendMessageUseCase_Validation(t *testing.T) {
	gates := &mockGateAccessChecker{}
	uc := newSendMessageUseCase(gates, &mockMemberRepository{}, &mockThreadRepository{}, &mockMessageRepository{})

	_, err := uc.Execute(context.Background(), SendMessageCommand{SpaceID: "space-1", UserID: "user-1", Body: "  "})

	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, gates.requests)
}
