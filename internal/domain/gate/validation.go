package gate

import "fmt"

// IssueSeverity grades a configuration issue
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// IssueCode identifies a kind of configuration issue
type IssueCode string

const (
	IssueAmbiguousPayGate     IssueCode = "ambiguous_pay_gate"
	IssueMissingLookupKey     IssueCode = "missing_lookup_key"
	IssueUnsupportedProvider  IssueCode = "unsupported_provider"
	IssueInvalidBillingMode   IssueCode = "invalid_billing_mode"
	IssueNoActions            IssueCode = "no_actions"
	IssueTokenGateUnevaluated IssueCode = "token_gate_unevaluated"
)

// Issue is one finding of ValidateGateSet
type Issue struct {
	Severity   IssueSeverity `json:"severity"`
	Code       IssueCode     `json:"code"`
	TargetType TargetType    `json:"target_type"`
	TargetID   string        `json:"target_id"`
	GateID     string        `json:"gate_id"`
	Action     string        `json:"action,omitempty"`
	// OtherGateIDs lists the gates shadowed by GateID for an ambiguous action.
	OtherGateIDs []string `json:"other_gate_ids,omitempty"`
	Message      string   `json:"message"`
}

type targetKey struct {
	targetType TargetType
	targetID   string
}

// ValidateGateSet inspects enabled gates and reports configurations the
// resolver can only evaluate by falling back on row order, plus gates that can
// never be satisfied. Disabled gates are ignored. gates must be in persisted
// order; the first gate of an ambiguous group is the one the resolver uses.
func ValidateGateSet(gates []*Gate) []Issue {
	issues := make([]Issue, 0)

	order := make([]targetKey, 0)
	byTarget := make(map[targetKey][]*Gate)
	for _, g := range gates {
		if g == nil || !g.enabled {
			continue
		}
		key := targetKey{g.targetType, g.targetID}
		if _, seen := byTarget[key]; !seen {
			order = append(order, key)
		}
		byTarget[key] = append(byTarget[key], g)
	}

	for _, key := range order {
		issues = append(issues, validateTarget(byTarget[key])...)
	}
	return issues
}

func validateTarget(gates []*Gate) []Issue {
	var issues []Issue

	// action -> pay gates restricting it, in order
	payByAction := make(map[string][]*Gate)
	var actionOrder []string

	for _, g := range gates {
		if len(g.Actions()) == 0 {
			issues = append(issues, newIssue(g, SeverityWarning, IssueNoActions, "",
				"gate restricts no actions and has no effect"))
		}

		switch g.gateType {
		case GateTypePay:
			cfg := g.payConfig
			if cfg.LookupKey == "" {
				issues = append(issues, newIssue(g, SeverityError, IssueMissingLookupKey, "",
					"pay gate has no lookup_key; matching actions are always rejected"))
			}
			if cfg.Provider != ProviderStripe {
				issues = append(issues, newIssue(g, SeverityWarning, IssueUnsupportedProvider, "",
					fmt.Sprintf("provider %q is not supported; entitlements are read from Stripe", cfg.Provider)))
			}
			if cfg.BillingMode != "" && !cfg.BillingMode.IsValid() {
				issues = append(issues, newIssue(g, SeverityWarning, IssueInvalidBillingMode, "",
					fmt.Sprintf("billing_mode %q is neither payment nor subscription", cfg.BillingMode)))
			}
			for _, action := range cfg.GateActions {
				if _, seen := payByAction[action]; !seen {
					actionOrder = append(actionOrder, action)
				}
				payByAction[action] = appendUniqueGate(payByAction[action], g)
			}
		case GateTypeToken:
			if len(g.Actions()) > 0 {
				issues = append(issues, newIssue(g, SeverityWarning, IssueTokenGateUnevaluated, "",
					"token gates always deny: on-chain verification is not implemented"))
			}
		}
	}

	for _, action := range actionOrder {
		matches := payByAction[action]
		if len(matches) < 2 {
			continue
		}
		others := make([]string, 0, len(matches)-1)
		for _, g := range matches[1:] {
			others = append(others, g.id)
		}
		issue := newIssue(matches[0], SeverityError, IssueAmbiguousPayGate, action,
			fmt.Sprintf("%d enabled pay gates restrict %q; only the oldest is evaluated", len(matches), action))
		issue.OtherGateIDs = others
		issues = append(issues, issue)
	}

	return issues
}

func appendUniqueGate(gates []*Gate, g *Gate) []*Gate {
	for _, existing := range gates {
		if existing == g {
			return gates
		}
	}
	return append(gates, g)
}

func newIssue(g *Gate, severity IssueSeverity, code IssueCode, action, message string) Issue {
	return Issue{
		Severity:   severity,
		Code:       code,
		TargetType: g.targetType,
		TargetID:   g.targetID,
		GateID:     g.id,
		Action:     action,
		Message:    message,
	}
}

// HasErrors reports whether any issue is an error
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
