// Package db provides gorm query scopes and transaction helpers.
package db

import (
	"gorm.io/gorm"
)

// EnabledOnly filters rows to those with is_enabled set.
func EnabledOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_enabled = ?", true)
	}
}

// ForTarget filters rows attached to one feed or space.
//
// Example usage:
//
//	db.Model(&models.GateModel{}).Scopes(db.ForTarget("space", id)).Find(&rows)
func ForTarget(targetType, targetID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("target_type = ? AND target_id = ?", targetType, targetID)
	}
}

// OldestFirst orders rows by creation time, breaking ties on id.
// Gate evaluation depends on this order being stable.
func OldestFirst() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC").Order("id ASC")
	}
}
