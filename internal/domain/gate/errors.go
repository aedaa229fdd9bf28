package gate

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidTargetType is returned when a target type is neither feed nor space
	ErrInvalidTargetType = errors.New("invalid target type")

	// ErrInvalidGateType is returned when a persisted gate has an unknown gate type
	ErrInvalidGateType = errors.New("invalid gate type")

	// ErrTargetIDRequired is returned when the target ID is empty
	ErrTargetIDRequired = errors.New("target ID is required")

	// ErrActionRequired is returned when the action name is empty
	ErrActionRequired = errors.New("action is required")

	// ErrUserIDRequired is returned when no authenticated user is supplied
	ErrUserIDRequired = errors.New("user ID is required")
)

// IsRequestError reports whether err comes from validating an AccessRequest
func IsRequestError(err error) bool {
	return errors.Is(err, ErrInvalidTargetType) ||
		errors.Is(err, ErrTargetIDRequired) ||
		errors.Is(err, ErrActionRequired) ||
		errors.Is(err, ErrUserIDRequired)
}

// Reason is the machine-readable code of a policy denial
type Reason string

const (
	// ReasonPayGateMissingLookup: a matching pay gate has no usable lookup key.
	ReasonPayGateMissingLookup Reason = "pay_gate_missing_lookup"
	// ReasonPaymentRequired: the user holds no active entitlement for the pay gate.
	ReasonPaymentRequired Reason = "payment_required"
	// ReasonTokenGateNotImplemented: token ownership cannot be verified yet.
	ReasonTokenGateNotImplemented Reason = "token_gate_not_implemented"
)

func (r Reason) String() string {
	return string(r)
}

// Status returns the HTTP status a caller should answer with for this reason.
func (r Reason) Status() int {
	switch r {
	case ReasonPayGateMissingLookup:
		return http.StatusBadRequest
	case ReasonPaymentRequired:
		return http.StatusPaymentRequired
	case ReasonTokenGateNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusForbidden
	}
}

// Message returns the default human-readable message for this reason.
func (r Reason) Message() string {
	switch r {
	case ReasonPayGateMissingLookup:
		return "Pay gate is misconfigured: missing lookup key"
	case ReasonPaymentRequired:
		return "Payment required"
	case ReasonTokenGateNotImplemented:
		return "Token gate verification is not implemented"
	default:
		return "Access denied"
	}
}

// GateAccessError is a policy denial expressed as an error value. It is only
// ever produced for the three reasons above; lookup failures are never wrapped
// into it.
type GateAccessError struct {
	Status  int    `json:"status"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
	GateID  string `json:"gate_id,omitempty"`
}

func (e *GateAccessError) Error() string {
	return fmt.Sprintf("gate access denied: %s: %s", e.Reason, e.Message)
}

// NewGateAccessError creates a denial error with the default status and message for reason
func NewGateAccessError(reason Reason, gateID string) *GateAccessError {
	return &GateAccessError{
		Status:  reason.Status(),
		Reason:  reason,
		Message: reason.Message(),
		GateID:  gateID,
	}
}

// AsGateAccessError extracts a GateAccessError from err
func AsGateAccessError(err error) (*GateAccessError, bool) {
	var gateErr *GateAccessError
	if errors.As(err, &gateErr) {
		return gateErr, true
	}
	return nil, false
}

// IsReason reports whether err is a policy denial with the given reason
func IsReason(err error, reason Reason) bool {
	gateErr, ok := AsGateAccessError(err)
	return ok && gateErr.Reason == reason
}
