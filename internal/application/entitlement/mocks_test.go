package entitlement

import (
	"context"

	"github.com/ba6/gatekeeper/internal/domain/entitlement"
)

type mockCustomerRepository struct {
	FindByUserIDFunc func(ctx context.Context, userID string) ([]*entitlement.Customer, error)
	calls            int
}

func (m *mockCustomerRepository) FindByUserID(ctx context.Context, userID string) ([]*entitlement.Customer, error) {
	m.calls++
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

type mockActiveEntitlementRepository struct {
	ExistsFunc         func(ctx context.Context, customerID, lookupKey string) (bool, error)
	ListLookupKeysFunc func(ctx context.Context, customerID string) ([]string, error)
	calls              int
}

func (m *mockActiveEntitlementRepository) Exists(ctx context.Context, customerID, lookupKey string) (bool, error) {
	m.calls++
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, customerID, lookupKey)
	}
	return false, nil
}

func (m *mockActiveEntitlementRepository) ListLookupKeys(ctx context.Context, customerID string) ([]string, error) {
	m.calls++
	if m.ListLookupKeysFunc != nil {
		return m.ListLookupKeysFunc(ctx, customerID)
	}
	return nil, nil
}
