package gate

import "context"

// Repository is the read-only gate store
type Repository interface {
	// ListEnabled returns the enabled gates of gateType attached to the target,
	// oldest first (created_at, then id). The order is what makes first-match
	// evaluation deterministic.
	ListEnabled(ctx context.Context, gateType GateType, targetType TargetType, targetID string) ([]*Gate, error)

	// ListAllEnabled returns every enabled gate, grouped by target and oldest
	// first within a target. Used by configuration validation.
	ListAllEnabled(ctx context.Context) ([]*Gate, error)
}
