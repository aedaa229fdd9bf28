package entitlement

import "context"

// CustomerRepository reads Stripe customers
type CustomerRepository interface {
	// FindByUserID returns every customer whose metadata links it to userID,
	// in persisted order. An empty result is not an error.
	FindByUserID(ctx context.Context, userID string) ([]*Customer, error)
}

// ActiveEntitlementRepository reads the active entitlement view
type ActiveEntitlementRepository interface {
	// Exists reports whether customerID holds an active entitlement for lookupKey
	Exists(ctx context.Context, customerID, lookupKey string) (bool, error)

	// ListLookupKeys returns the lookup keys of all active entitlements of customerID
	ListLookupKeys(ctx context.Context, customerID string) ([]string, error)
}
