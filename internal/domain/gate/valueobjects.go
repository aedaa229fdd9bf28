// Package gate provides the domain model for access gates attached to feeds and spaces.
// A gate restricts a set of named actions behind a billing entitlement (pay gate)
// or on-chain token ownership (token gate).
package gate

// TargetType is the kind of entity a gate is attached to
type TargetType string

const (
	TargetTypeFeed  TargetType = "feed"
	TargetTypeSpace TargetType = "space"
)

// IsValid checks if the target type is valid
func (t TargetType) IsValid() bool {
	switch t {
	case TargetTypeFeed, TargetTypeSpace:
		return true
	default:
		return false
	}
}

func (t TargetType) String() string {
	return string(t)
}

// GateType identifies how a gate is satisfied
type GateType string

const (
	GateTypePay   GateType = "pay_gate"
	GateTypeToken GateType = "token_gate"
)

// IsValid checks if the gate type is valid
func (g GateType) IsValid() bool {
	switch g {
	case GateTypePay, GateTypeToken:
		return true
	default:
		return false
	}
}

func (g GateType) String() string {
	return string(g)
}

// BillingMode mirrors the Stripe checkout mode used to purchase access
type BillingMode string

const (
	BillingModePayment      BillingMode = "payment"
	BillingModeSubscription BillingMode = "subscription"
)

// IsValid checks if the billing mode is valid
func (b BillingMode) IsValid() bool {
	switch b {
	case BillingModePayment, BillingModeSubscription:
		return true
	default:
		return false
	}
}

func (b BillingMode) String() string {
	return string(b)
}

// ProviderStripe is the only billing provider pay gates support.
const ProviderStripe = "stripe"
