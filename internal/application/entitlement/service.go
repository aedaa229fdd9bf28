package entitlement

import (
	"context"
	"fmt"
	"strings"

	"github.com/ba6/gatekeeper/internal/domain/entitlement"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// ServiceImpl implements entitlement.Checker against the Stripe Sync Engine tables
type ServiceImpl struct {
	customerRepo    entitlement.CustomerRepository
	entitlementRepo entitlement.ActiveEntitlementRepository
	logger          logger.Interface
}

// NewService creates a new entitlement service
func NewService(
	customerRepo entitlement.CustomerRepository,
	entitlementRepo entitlement.ActiveEntitlementRepository,
	logger logger.Interface,
) *ServiceImpl {
	return &ServiceImpl{
		customerRepo:    customerRepo,
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

// HasActiveEntitlement reports whether the Stripe customer linked to userID
// holds an active entitlement for lookupKey. An empty lookup key is never
// entitled and causes no reads. Lookup failures are returned wrapped.
func (s *ServiceImpl) HasActiveEntitlement(ctx context.Context, userID, lookupKey string) (bool, error) {
	lookupKey = strings.TrimSpace(lookupKey)
	if lookupKey == "" {
		return false, nil
	}

	customer, err := s.findCustomer(ctx, userID)
	if err != nil {
		return false, err
	}
	if customer == nil {
		s.logger.Debugw("no stripe customer linked to user", "user_id", userID)
		return false, nil
	}

	exists, err := s.entitlementRepo.Exists(ctx, customer.ID(), lookupKey)
	if err != nil {
		s.logger.Errorw("failed to check active entitlement",
			"error", err,
			"user_id", userID,
			"customer_id", customer.ID(),
			"lookup_key", lookupKey,
		)
		return false, fmt.Errorf("failed to check active entitlement: %w", err)
	}

	s.logger.Debugw("entitlement checked",
		"user_id", userID,
		"customer_id", customer.ID(),
		"lookup_key", lookupKey,
		"entitled", exists,
	)
	return exists, nil
}

// ListLookupKeys returns the lookup keys the user is currently entitled to.
// A user without a Stripe customer has none.
func (s *ServiceImpl) ListLookupKeys(ctx context.Context, userID string) ([]string, error) {
	customer, err := s.findCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return []string{}, nil
	}

	keys, err := s.entitlementRepo.ListLookupKeys(ctx, customer.ID())
	if err != nil {
		s.logger.Errorw("failed to list active entitlements",
			"error", err,
			"user_id", userID,
			"customer_id", customer.ID(),
		)
		return nil, fmt.Errorf("failed to list active entitlements: %w", err)
	}
	return keys, nil
}

func (s *ServiceImpl) findCustomer(ctx context.Context, userID string) (*entitlement.Customer, error) {
	customers, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Errorw("failed to find stripe customer",
			"error", err,
			"user_id", userID,
		)
		return nil, fmt.Errorf("failed to find stripe customer: %w", err)
	}
	return entitlement.SelectCustomer(customers), nil
}
