package entitlement

import (
	"fmt"
	"strings"
	"time"
)

// Customer is a Stripe customer row mirrored by the Stripe Sync Engine.
// Only the fields needed to map an application user to a customer are kept.
type Customer struct {
	id        string
	email     string
	deleted   bool
	createdAt time.Time
}

// ReconstructCustomer rebuilds a customer from persistence
func ReconstructCustomer(id, email string, deleted bool, createdAt time.Time) (*Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("customer ID is required")
	}
	return &Customer{
		id:        id,
		email:     email,
		deleted:   deleted,
		createdAt: createdAt,
	}, nil
}

// ID returns the Stripe customer ID (cus_...)
func (c *Customer) ID() string {
	return c.id
}

func (c *Customer) Email() string {
	return c.email
}

// IsDeleted reports whether the customer was deleted in Stripe
func (c *Customer) IsDeleted() bool {
	return c.deleted
}

func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

// SelectCustomer picks the customer whose entitlements represent the user:
// the first non-deleted record, or the first record when all are deleted.
// It returns nil for an empty slice.
func SelectCustomer(customers []*Customer) *Customer {
	var first *Customer
	for _, c := range customers {
		if c == nil {
			continue
		}
		if !c.deleted {
			return c
		}
		if first == nil {
			first = c
		}
	}
	return first
}
