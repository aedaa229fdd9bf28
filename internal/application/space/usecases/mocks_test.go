package usecases

import (
	"context"

	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/domain/space"
)

type mockGateAccessChecker struct {
	RequireGateAccessFunc func(ctx context.Context, req gate.AccessRequest) error
	requests              []gate.AccessRequest
}

func (m *mockGateAccessChecker) RequireGateAccess(ctx context.Context, req gate.AccessRequest) error {
	m.requests = append(m.requests, req)
	if m.RequireGateAccessFunc != nil {
		return m.RequireGateAccessFunc(ctx, req)
	}
	return nil
}

type mockMemberRepository struct {
	AddFunc func(ctx context.Context, m *space.Member) (bool, error)
	GetFunc func(ctx context.Context, spaceID, userID string) (*space.Member, error)
	added   int
}

func (m *mockMemberRepository) Add(ctx context.Context, member *space.Member) (bool, error) {
	m.added++
	if m.AddFunc != nil {
		return m.AddFunc(ctx, member)
	}
	return true, nil
}

func (m *mockMemberRepository) Get(ctx context.Context, spaceID, userID string) (*space.Member, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, spaceID, userID)
	}
	return nil, nil
}

type mockThreadRepository struct {
	CreateFunc  func(ctx context.Context, t *space.Thread) error
	GetByIDFunc func(ctx context.Context, id string) (*space.Thread, error)
	created     []*space.Thread
}

func (m *mockThreadRepository) Create(ctx context.Context, t *space.Thread) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, t); err != nil {
			return err
		}
	}
	m.created = append(m.created, t)
	return nil
}

func (m *mockThreadRepository) GetByID(ctx context.Context, id string) (*space.Thread, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

type mockMessageRepository struct {
	CreateFunc func(ctx context.Context, m *space.Message) error
	created    []*space.Message
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *space.Message) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, msg); err != nil {
			return err
		}
	}
	m.created = append(m.created, msg)
	return nil
}

type mockTransactionRunner struct {
	runs int
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	return fn(ctx)
}

func memberOf(spaceID string) func(ctx context.Context, sID, userID string) (*space.Member, error) {
	return func(ctx context.Context, sID, userID string) (*space.Member, error) {
		if sID != spaceID {
			return nil, nil
		}
		m, err := space.NewMember(sID, userID)
		return m, err
	}
}

func denyWith(reason gate.Reason) func(ctx context.Context, req gate.AccessRequest) error {
	return func(ctx context.Context, req gate.AccessRequest) error {
		return gate.NewGateAccessError(reason, "gate-1")
	}
}
