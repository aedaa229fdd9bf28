package entitlement

import "context"

// Checker answers whether a user currently holds an entitlement.
// Implementations read live data on every call and never cache.
type Checker interface {
	HasActiveEntitlement(ctx context.Context, userID, lookupKey string) (bool, error)
}
