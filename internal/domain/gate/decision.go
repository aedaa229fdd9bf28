package gate

import "strings"

// AccessRequest identifies who attempts which action on which target.
// UserID must already be authenticated by the caller.
type AccessRequest struct {
	UserID     string
	TargetType TargetType
	TargetID   string
	Action     string
}

// Validate checks the request shape before any lookup happens
func (r AccessRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrUserIDRequired
	}
	if !r.TargetType.IsValid() {
		return ErrInvalidTargetType
	}
	if strings.TrimSpace(r.TargetID) == "" {
		return ErrTargetIDRequired
	}
	if NormalizeAction(r.Action) == "" {
		return ErrActionRequired
	}
	return nil
}

// Denial explains why a request was refused by policy
type Denial struct {
	Reason  Reason
	GateID  string
	Message string
}

// Decision is the outcome of evaluating a request against a target's gates.
// A nil Denial means access is allowed.
type Decision struct {
	Denial *Denial
}

// Allow is the decision for a request no gate blocks
func Allow() Decision {
	return Decision{}
}

// Deny builds a denial decision for reason, attributed to gateID
func Deny(reason Reason, gateID string) Decision {
	return Decision{Denial: &Denial{
		Reason:  reason,
		GateID:  gateID,
		Message: reason.Message(),
	}}
}

func (d Decision) Allowed() bool {
	return d.Denial == nil
}

// Outcome is "allowed" or the denial reason code
func (d Decision) Outcome() string {
	if d.Denial == nil {
		return "allowed"
	}
	return d.Denial.Reason.String()
}

// Err converts a denial into a *GateAccessError; it returns nil when allowed.
func (d Decision) Err() error {
	if d.Denial == nil {
		return nil
	}
	return &GateAccessError{
		Status:  d.Denial.Reason.Status(),
		Reason:  d.Denial.Reason,
		Message: d.Denial.Message,
		GateID:  d.Denial.GateID,
	}
}
