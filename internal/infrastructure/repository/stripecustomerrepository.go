package repository

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ba6/gatekeeper/internal/domain/entitlement"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/mappers"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/models"
	"github.com/ba6/gatekeeper/internal/shared/constants"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// StripeCustomerRepositoryImpl reads customers synced by the Stripe Sync Engine.
// Customers are linked to users through a key of their metadata object.
type StripeCustomerRepositoryImpl struct {
	db          *gorm.DB
	table       string
	metadataKey string
	mapper      mappers.CustomerMapper
	logger      logger.Interface
}

// NewStripeCustomerRepository creates a customer repository reading
// <schema>.customers. An empty schema uses the connection's search path.
func NewStripeCustomerRepository(db *gorm.DB, schema, metadataKey string, logger logger.Interface) entitlement.CustomerRepository {
	if metadataKey == "" {
		metadataKey = "user_id"
	}
	return &StripeCustomerRepositoryImpl{
		db:          db,
		table:       qualifiedTable(schema, constants.TableStripeCustomers),
		metadataKey: metadataKey,
		mapper:      mappers.NewCustomerMapper(),
		logger:      logger,
	}
}

// FindByUserID returns customers whose metadata links them to userID, oldest first
func (r *StripeCustomerRepositoryImpl) FindByUserID(ctx context.Context, userID string) ([]*entitlement.Customer, error) {
	var rows []models.StripeCustomerModel
	if err := r.db.WithContext(ctx).
		Table(r.table).
		Where(datatypes.JSONQuery("metadata").Equals(userID, r.metadataKey)).
		Order("created ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to find stripe customers",
			"user_id", userID,
			"table", r.table,
			"error", err)
		return nil, fmt.Errorf("failed to find stripe customers: %w", err)
	}

	customers := make([]*entitlement.Customer, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			r.logger.Warnw("skipping invalid stripe customer row", "error", err)
			continue
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func qualifiedTable(schema, table string) string {
	if schema == "" {
		return table
	}
	return schema + "." + table
}
