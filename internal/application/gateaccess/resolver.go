// Package gateaccess decides whether a user may perform an action on a feed or
// space, based on the pay gates and token gates attached to it.
package gateaccess

import (
	"context"
	"fmt"
	"time"

	"github.com/ba6/gatekeeper/internal/domain/entitlement"
	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// DecisionRecorder observes resolver outcomes
type DecisionRecorder interface {
	RecordDecision(targetType, outcome string, elapsed time.Duration)
	RecordAmbiguousMatch(targetType string)
}

type nopRecorder struct{}

func (nopRecorder) RecordDecision(string, string, time.Duration) {}
func (nopRecorder) RecordAmbiguousMatch(string)                  {}

const outcomeError = "error"

// Resolver evaluates access requests. It holds no state between calls and
// re-reads gates and entitlements every time.
type Resolver struct {
	gateRepo     gate.Repository
	entitlements entitlement.Checker
	recorder     DecisionRecorder
	logger       logger.Interface
}

// NewResolver creates a resolver. recorder may be nil.
func NewResolver(
	gateRepo gate.Repository,
	entitlements entitlement.Checker,
	recorder DecisionRecorder,
	logger logger.Interface,
) *Resolver {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Resolver{
		gateRepo:     gateRepo,
		entitlements: entitlements,
		recorder:     recorder,
		logger:       logger,
	}
}

// RequireGateAccess returns nil when access is allowed, a *gate.GateAccessError
// when policy denies it, and any other error unchanged when a lookup failed.
func (r *Resolver) RequireGateAccess(ctx context.Context, req gate.AccessRequest) error {
	decision, err := r.Evaluate(ctx, req)
	if err != nil {
		return err
	}
	return decision.Err()
}

// Evaluate runs the pay gate check and then the token gate check for the
// request's target. A passing pay gate does not skip the token gate check.
// The returned Decision is only meaningful when err is nil.
func (r *Resolver) Evaluate(ctx context.Context, req gate.AccessRequest) (gate.Decision, error) {
	if err := req.Validate(); err != nil {
		return gate.Decision{}, fmt.Errorf("invalid access request: %w", err)
	}

	start := time.Now()
	action := gate.NormalizeAction(req.Action)

	decision, err := r.evaluatePayGates(ctx, req, action)
	if err == nil && decision.Allowed() {
		decision, err = r.evaluateTokenGates(ctx, req, action)
	}

	outcome := decision.Outcome()
	if err != nil {
		outcome = outcomeError
	}
	r.recorder.RecordDecision(req.TargetType.String(), outcome, time.Since(start))

	if err != nil {
		return gate.Decision{}, err
	}

	if !decision.Allowed() {
		r.logger.Infow("gate access denied",
			"user_id", req.UserID,
			"target_type", req.TargetType,
			"target_id", req.TargetID,
			"action", action,
			"reason", decision.Denial.Reason,
			"gate_id", decision.Denial.GateID,
		)
	}
	return decision, nil
}

func (r *Resolver) evaluatePayGates(ctx context.Context, req gate.AccessRequest, action string) (gate.Decision, error) {
	gates, err := r.gateRepo.ListEnabled(ctx, gate.GateTypePay, req.TargetType, req.TargetID)
	if err != nil {
		r.logger.Errorw("failed to list pay gates",
			"error", err,
			"target_type", req.TargetType,
			"target_id", req.TargetID,
		)
		return gate.Decision{}, fmt.Errorf("failed to list pay gates: %w", err)
	}

	matches := gate.FindMatches(gates, action)
	if len(matches) == 0 {
		return gate.Allow(), nil
	}
	match := matches[0]

	if len(matches) > 1 {
		others := make([]string, 0, len(matches)-1)
		for _, g := range matches[1:] {
			others = append(others, g.ID())
		}
		r.recorder.RecordAmbiguousMatch(req.TargetType.String())
		r.logger.Warnw("multiple enabled pay gates restrict action, evaluating the oldest",
			"target_type", req.TargetType,
			"target_id", req.TargetID,
			"action", action,
			"gate_id", match.ID(),
			"ignored_gate_ids", others,
		)
	}

	lookupKey := match.PayConfig().LookupKey
	if lookupKey == "" {
		r.logger.Warnw("pay gate has no lookup key",
			"gate_id", match.ID(),
			"target_type", req.TargetType,
			"target_id", req.TargetID,
		)
		return gate.Deny(gate.ReasonPayGateMissingLookup, match.ID()), nil
	}

	entitled, err := r.entitlements.HasActiveEntitlement(ctx, req.UserID, lookupKey)
	if err != nil {
		return gate.Decision{}, fmt.Errorf("failed to check entitlement for gate %s: %w", match.ID(), err)
	}
	if !entitled {
		return gate.Deny(gate.ReasonPaymentRequired, match.ID()), nil
	}

	r.logger.Debugw("pay gate satisfied",
		"user_id", req.UserID,
		"gate_id", match.ID(),
		"lookup_key", lookupKey,
	)
	return gate.Allow(), nil
}

// evaluateTokenGates denies any action a token gate restricts: on-chain
// ownership is not verified yet.
func (r *Resolver) evaluateTokenGates(ctx context.Context, req gate.AccessRequest, action string) (gate.Decision, error) {
	gates, err := r.gateRepo.ListEnabled(ctx, gate.GateTypeToken, req.TargetType, req.TargetID)
	if err != nil {
		r.logger.Errorw("failed to list token gates",
			"error", err,
			"target_type", req.TargetType,
			"target_id", req.TargetID,
		)
		return gate.Decision{}, fmt.Errorf("failed to list token gates: %w", err)
	}

	if match := gate.FindFirstMatch(gates, action); match != nil {
		return gate.Deny(gate.ReasonTokenGateNotImplemented, match.ID()), nil
	}
	return gate.Allow(), nil
}
