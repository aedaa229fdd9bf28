package gateaccess

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ba6/gatekeeper/internal/domain/gate"
)

type mockGateRepository struct {
	ListEnabledFunc    func(ctx context.Context, gateType gate.GateType, targetType gate.TargetType, targetID string) ([]*gate.Gate, error)
	ListAllEnabledFunc func(ctx context.Context) ([]*gate.Gate, error)

	mu    sync.Mutex
	calls map[gate.GateType]int
}

func (m *mockGateRepository) ListEnabled(ctx context.Context, gateType gate.GateType, targetType gate.TargetType, targetID string) ([]*gate.Gate, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[gate.GateType]int)
	}
	m.calls[gateType]++
	m.mu.Unlock()

	if m.ListEnabledFunc != nil {
		return m.ListEnabledFunc(ctx, gateType, targetType, targetID)
	}
	return nil, nil
}

func (m *mockGateRepository) ListAllEnabled(ctx context.Context) ([]*gate.Gate, error) {
	if m.ListAllEnabledFunc != nil {
		return m.ListAllEnabledFunc(ctx)
	}
	return nil, nil
}

func (m *mockGateRepository) callCount(gateType gate.GateType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[gateType]
}

// gatesByType serves a fixed gate set, split by gate type
func gatesByType(gates ...*gate.Gate) func(ctx context.Context, gateType gate.GateType, targetType gate.TargetType, targetID string) ([]*gate.Gate, error) {
	return func(ctx context.Context, gateType gate.GateType, targetType gate.TargetType, targetID string) ([]*gate.Gate, error) {
		var result []*gate.Gate
		for _, g := range gates {
			if g.GateType() == gateType && g.TargetType() == targetType && g.TargetID() == targetID && g.IsEnabled() {
				result = append(result, g)
			}
		}
		return result, nil
	}
}

type mockEntitlementChecker struct {
	HasActiveEntitlementFunc func(ctx context.Context, userID, lookupKey string) (bool, error)
	calls                    int
}

func (m *mockEntitlementChecker) HasActiveEntitlement(ctx context.Context, userID, lookupKey string) (bool, error) {
	m.calls++
	if m.HasActiveEntitlementFunc != nil {
		return m.HasActiveEntitlementFunc(ctx, userID, lookupKey)
	}
	return false, nil
}

// entitledTo grants exactly the listed lookup keys to every user
func entitledTo(keys ...string) *mockEntitlementChecker {
	return &mockEntitlementChecker{
		HasActiveEntitlementFunc: func(ctx context.Context, userID, lookupKey string) (bool, error) {
			for _, k := range keys {
				if k == lookupKey {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

type recordedDecision struct {
	targetType string
	outcome    string
}

type mockRecorder struct {
	decisions []recordedDecision
	ambiguous int
}

func (m *mockRecorder) RecordDecision(targetType, outcome string, _ time.Duration) {
	m.decisions = append(m.decisions, recordedDecision{targetType, outcome})
}

func (m *mockRecorder) RecordAmbiguousMatch(string) {
	m.ambiguous++
}

func newPayGate(t *testing.T, id, targetID string, enabled bool, raw string) *gate.Gate {
	t.Helper()
	g, err := gate.ReconstructGate(id, gate.TargetTypeSpace, targetID, gate.GateTypePay, enabled, []byte(raw), time.Now())
	require.NoError(t, err)
	return g
}

func newTokenGate(t *testing.T, id, targetID string, raw string) *gate.Gate {
	t.Helper()
	g, err := gate.ReconstructGate(id, gate.TargetTypeSpace, targetID, gate.GateTypeToken, true, []byte(raw), time.Now())
	require.NoError(t, err)
	return g
}
