package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/ba6/gatekeeper/internal/shared/constants"
)

// StripeCustomerModel mirrors the Stripe Sync Engine customers table.
// Repositories qualify the table with the configured billing schema.
type StripeCustomerModel struct {
	ID       string `gorm:"primaryKey;type:text"`
	Email    *string
	Name     *string
	Metadata datatypes.JSON
	Deleted  bool  `gorm:"default:false"`
	Created  int64 `gorm:"index"`
}

// TableName specifies the unqualified table name for GORM
func (StripeCustomerModel) TableName() string {
	return constants.TableStripeCustomers
}

// StripeActiveEntitlementModel mirrors the active_entitlements table, one row
// per feature a customer currently has access to.
type StripeActiveEntitlementModel struct {
	ID           string `gorm:"primaryKey;type:text"`
	Object       string
	Livemode     bool
	Feature      string
	Customer     string `gorm:"not null;index:idx_active_entitlements_customer,priority:1"`
	LookupKey    string `gorm:"not null;index:idx_active_entitlements_customer,priority:2"`
	LastSyncedAt *time.Time
}

// TableName specifies the unqualified table name for GORM
func (StripeActiveEntitlementModel) TableName() string {
	return constants.TableStripeActiveEntitlements
}
