package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/ba6/gatekeeper/internal/shared/constants"
)

// GateModel is a row of the gates table. Config holds the per-type JSON
// document and is parsed by the gate domain.
type GateModel struct {
	ID         string         `gorm:"primaryKey;type:text"`
	TargetType string         `gorm:"not null;size:20;index:idx_gates_target,priority:1"`
	TargetID   string         `gorm:"not null;size:255;index:idx_gates_target,priority:2"`
	GateType   string         `gorm:"not null;size:20;index:idx_gates_target,priority:3"`
	IsEnabled  bool           `gorm:"not null;default:true"`
	Config     datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (GateModel) TableName() string {
	return constants.TableGates
}
