package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/mappers"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/models"
	"github.com/ba6/gatekeeper/internal/shared/db"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// GateRepositoryImpl implements gate.Repository on the gates table
type GateRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.GateMapper
	logger logger.Interface
}

// NewGateRepository creates a new gate repository instance
func NewGateRepository(db *gorm.DB, logger logger.Interface) gate.Repository {
	return &GateRepositoryImpl{
		db:     db,
		mapper: mappers.NewGateMapper(),
		logger: logger,
	}
}

// ListEnabled returns the enabled gates of one type on a target, oldest first
func (r *GateRepositoryImpl) ListEnabled(ctx context.Context, gateType gate.GateType, targetType gate.TargetType, targetID string) ([]*gate.Gate, error) {
	var rows []models.GateModel
	if err := r.db.WithContext(ctx).
		Where("gate_type = ?", gateType.String()).
		Scopes(db.EnabledOnly(), db.ForTarget(targetType.String(), targetID), db.OldestFirst()).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list enabled gates",
			"gate_type", gateType,
			"target_type", targetType,
			"target_id", targetID,
			"error", err)
		return nil, fmt.Errorf("failed to list enabled gates: %w", err)
	}

	gates := make([]*gate.Gate, 0, len(rows))
	for i := range rows {
		g, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			r.logger.Errorw("invalid gate row", "gate_id", rows[i].ID, "error", err)
			return nil, err
		}
		gates = append(gates, g)
	}
	return gates, nil
}

// ListAllEnabled returns every enabled gate grouped by target, oldest first
// within a target. Rows with an unknown target or gate type are skipped.
func (r *GateRepositoryImpl) ListAllEnabled(ctx context.Context) ([]*gate.Gate, error) {
	var rows []models.GateModel
	if err := r.db.WithContext(ctx).
		Scopes(db.EnabledOnly()).
		Order("target_type ASC").
		Order("target_id ASC").
		Scopes(db.OldestFirst()).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list all enabled gates", "error", err)
		return nil, fmt.Errorf("failed to list all enabled gates: %w", err)
	}

	gates := make([]*gate.Gate, 0, len(rows))
	for i := range rows {
		g, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			r.logger.Warnw("skipping invalid gate row", "gate_id", rows[i].ID, "error", err)
			continue
		}
		gates = append(gates, g)
	}
	return gates, nil
}
