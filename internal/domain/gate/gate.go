package gate

import (
	"fmt"
	"strings"
	"time"
)

// Gate is an access restriction attached to a target and a set of actions.
// Exactly one of payConfig and tokenConfig is set, according to gateType.
type Gate struct {
	id          string
	targetType  TargetType
	targetID    string
	gateType    GateType
	enabled     bool
	payConfig   *PayGateConfig
	tokenConfig *TokenGateConfig
	createdAt   time.Time
}

// ReconstructGate rebuilds a gate from a persisted row, parsing the raw config
// column into the config type matching gateType.
func ReconstructGate(
	id string,
	targetType TargetType,
	targetID string,
	gateType GateType,
	enabled bool,
	rawConfig []byte,
	createdAt time.Time,
) (*Gate, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("gate ID is required")
	}
	if !targetType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTargetType, targetType)
	}
	if strings.TrimSpace(targetID) == "" {
		return nil, ErrTargetIDRequired
	}

	g := &Gate{
		id:         id,
		targetType: targetType,
		targetID:   targetID,
		gateType:   gateType,
		enabled:    enabled,
		createdAt:  createdAt,
	}

	switch gateType {
	case GateTypePay:
		cfg := ParsePayGateConfig(rawConfig)
		g.payConfig = &cfg
	case GateTypeToken:
		cfg := ParseTokenGateConfig(rawConfig)
		g.tokenConfig = &cfg
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidGateType, gateType)
	}

	return g, nil
}

func (g *Gate) ID() string {
	return g.id
}

func (g *Gate) TargetType() TargetType {
	return g.targetType
}

func (g *Gate) TargetID() string {
	return g.targetID
}

func (g *Gate) GateType() GateType {
	return g.gateType
}

func (g *Gate) IsEnabled() bool {
	return g.enabled
}

func (g *Gate) CreatedAt() time.Time {
	return g.createdAt
}

// PayConfig returns the pay gate config, or nil for token gates
func (g *Gate) PayConfig() *PayGateConfig {
	return g.payConfig
}

// TokenConfig returns the token gate config, or nil for pay gates
func (g *Gate) TokenConfig() *TokenGateConfig {
	return g.tokenConfig
}

// Actions returns the normalized action names this gate restricts
func (g *Gate) Actions() []string {
	switch {
	case g.payConfig != nil:
		return g.payConfig.GateActions
	case g.tokenConfig != nil:
		return g.tokenConfig.GateActions
	default:
		return nil
	}
}

// Restricts reports whether the gate applies to action. The action is
// normalized the same way stored action lists are.
func (g *Gate) Restricts(action string) bool {
	return containsAction(g.Actions(), NormalizeAction(action))
}

// FindFirstMatch returns the first gate in gates that restricts action, or nil.
// Callers pass gates in their persisted order (oldest first).
func FindFirstMatch(gates []*Gate, action string) *Gate {
	for _, g := range gates {
		if g != nil && g.enabled && g.Restricts(action) {
			return g
		}
	}
	return nil
}

// FindMatches returns every enabled gate in gates that restricts action, in order.
func FindMatches(gates []*Gate, action string) []*Gate {
	var matches []*Gate
	for _, g := range gates {
		if g != nil && g.enabled && g.Restricts(action) {
			matches = append(matches, g)
		}
	}
	return matches
}
