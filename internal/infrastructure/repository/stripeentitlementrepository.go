package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ba6/gatekeeper/internal/domain/entitlement"
	"github.com/ba6/gatekeeper/internal/shared/constants"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// StripeEntitlementRepositoryImpl reads the active_entitlements table
type StripeEntitlementRepositoryImpl struct {
	db     *gorm.DB
	table  string
	logger logger.Interface
}

// NewStripeEntitlementRepository creates a repository reading <schema>.active_entitlements
func NewStripeEntitlementRepository(db *gorm.DB, schema string, logger logger.Interface) entitlement.ActiveEntitlementRepository {
	return &StripeEntitlementRepositoryImpl{
		db:     db,
		table:  qualifiedTable(schema, constants.TableStripeActiveEntitlements),
		logger: logger,
	}
}

// Exists checks if the customer holds an active entitlement for lookupKey
func (r *StripeEntitlementRepositoryImpl) Exists(ctx context.Context, customerID, lookupKey string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table(r.table).
		Where("customer = ? AND lookup_key = ?", customerID, lookupKey).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check active entitlement",
			"customer_id", customerID,
			"lookup_key", lookupKey,
			"error", err)
		return false, fmt.Errorf("failed to check active entitlement: %w", err)
	}
	return count > 0, nil
}

// ListLookupKeys returns the distinct lookup keys active for the customer
func (r *StripeEntitlementRepositoryImpl) ListLookupKeys(ctx context.Context, customerID string) ([]string, error) {
	keys := make([]string, 0)
	if err := r.db.WithContext(ctx).
		Table(r.table).
		Where("customer = ?", customerID).
		Distinct().
		Order("lookup_key ASC").
		Pluck("lookup_key", &keys).Error; err != nil {
		r.logger.Errorw("failed to list active entitlements",
			"customer_id", customerID,
			"error", err)
		return nil, fmt.Errorf("failed to list active entitlements: %w", err)
	}
	return keys, nil
}
