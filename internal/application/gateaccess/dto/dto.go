package dto

import (
	"time"

	"github.com/ba6/gatekeeper/internal/domain/gate"
)

// CheckGateAccessRequest is the body of a gate dry-run
type CheckGateAccessRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=feed space"`
	TargetID   string `json:"target_id" binding:"required,max=255"`
	Action     string `json:"action" binding:"required,max=100"`
}

// GateDecisionDTO reports a resolver decision. Reason, Message and GateID are
// empty when access is allowed. Entitlements lists the lookup keys the user
// currently holds.
type GateDecisionDTO struct {
	Allowed      bool     `json:"allowed"`
	Action       string   `json:"action"`
	Status       int      `json:"status,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	Message      string   `json:"message,omitempty"`
	GateID       string   `json:"gate_id,omitempty"`
	Entitlements []string `json:"entitlements"`
}

type GateDTO struct {
	ID          string    `json:"id"`
	GateType    string    `json:"gate_type"`
	Actions     []string  `json:"gate_actions"`
	Provider    string    `json:"provider,omitempty"`
	LookupKey   string    `json:"lookup_key,omitempty"`
	PriceID     string    `json:"price_id,omitempty"`
	BillingMode string    `json:"billing_mode,omitempty"`
	Chain       string    `json:"chain,omitempty"`
	Contract    string    `json:"contract_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TargetValidationDTO lists a target's enabled gates with their configuration issues
type TargetValidationDTO struct {
	TargetType string       `json:"target_type"`
	TargetID   string       `json:"target_id"`
	Gates      []GateDTO    `json:"gates"`
	Issues     []gate.Issue `json:"issues"`
	HasErrors  bool         `json:"has_errors"`
}

func ToGateDecisionDTO(action string, d gate.Decision) *GateDecisionDTO {
	result := &GateDecisionDTO{
		Allowed:      d.Allowed(),
		Action:       gate.NormalizeAction(action),
		Entitlements: []string{},
	}
	if d.Denial != nil {
		result.Status = d.Denial.Reason.Status()
		result.Reason = d.Denial.Reason.String()
		result.Message = d.Denial.Message
		result.GateID = d.Denial.GateID
	}
	return result
}

func ToGateDTO(g *gate.Gate) GateDTO {
	result := GateDTO{
		ID:        g.ID(),
		GateType:  g.GateType().String(),
		Actions:   g.Actions(),
		CreatedAt: g.CreatedAt(),
	}
	if result.Actions == nil {
		result.Actions = []string{}
	}
	if cfg := g.PayConfig(); cfg != nil {
		result.Provider = cfg.Provider
		result.LookupKey = cfg.LookupKey
		result.PriceID = cfg.PriceID
		result.BillingMode = cfg.BillingMode.String()
	}
	if cfg := g.TokenConfig(); cfg != nil {
		result.Chain = cfg.Chain
		result.Contract = cfg.ContractAddress
	}
	return result
}
