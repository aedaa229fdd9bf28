package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/models"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// OwnedModels are the tables this service creates and writes. The Stripe
// tables belong to the sync engine and are never migrated here.
func OwnedModels() []interface{} {
	return []interface{}{
		&models.GateModel{},
		&models.SpaceMemberModel{},
		&models.SpaceThreadModel{},
		&models.SpaceMessageModel{},
	}
}

// TableStatus reports whether a table is present in the database
type TableStatus struct {
	Name     string
	Owned    bool
	Exists   bool
	ReadOnly bool
}

// Manager applies GORM AutoMigrate to the owned tables
type Manager struct {
	billingSchema string
	logger        logger.Interface
}

func NewManager(billingSchema string, log logger.Interface) *Manager {
	return &Manager{
		billingSchema: billingSchema,
		logger:        log,
	}
}

// Migrate creates or alters the owned tables
func (m *Manager) Migrate(db *gorm.DB) error {
	owned := OwnedModels()
	m.logger.Infow("starting database migration", "models_count", len(owned))

	if err := db.AutoMigrate(owned...); err != nil {
		m.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	m.logger.Infow("database migration completed successfully")
	return nil
}

// Status lists the owned tables and the billing tables the resolver reads
func (m *Manager) Status(db *gorm.DB) []TableStatus {
	migrator := db.Migrator()

	statuses := make([]TableStatus, 0, 6)
	for _, model := range OwnedModels() {
		stmt := &gorm.Statement{DB: db}
		name := ""
		if err := stmt.Parse(model); err == nil {
			name = stmt.Schema.Table
		}
		statuses = append(statuses, TableStatus{
			Name:   name,
			Owned:  true,
			Exists: migrator.HasTable(model),
		})
	}

	for _, table := range []string{models.StripeCustomerModel{}.TableName(), models.StripeActiveEntitlementModel{}.TableName()} {
		qualified := table
		if m.billingSchema != "" {
			qualified = m.billingSchema + "." + table
		}
		statuses = append(statuses, TableStatus{
			Name:     qualified,
			Exists:   migrator.HasTable(qualified),
			ReadOnly: true,
		})
	}

	return statuses
}
