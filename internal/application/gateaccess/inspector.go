package gateaccess

import (
	"context"
	"fmt"

	"github.com/ba6/gatekeeper/internal/application/gateaccess/dto"
	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// Inspector reports gate configurations the resolver can only evaluate by
// falling back on gate order, and gates that can never be satisfied.
type Inspector struct {
	gateRepo gate.Repository
	logger   logger.Interface
}

func NewInspector(gateRepo gate.Repository, logger logger.Interface) *Inspector {
	return &Inspector{
		gateRepo: gateRepo,
		logger:   logger,
	}
}

// InspectTarget validates the enabled gates of one target
func (i *Inspector) InspectTarget(ctx context.Context, targetType gate.TargetType, targetID string) (*dto.TargetValidationDTO, error) {
	if !targetType.IsValid() {
		return nil, fmt.Errorf("%w: %s", gate.ErrInvalidTargetType, targetType)
	}
	if targetID == "" {
		return nil, gate.ErrTargetIDRequired
	}

	payGates, err := i.gateRepo.ListEnabled(ctx, gate.GateTypePay, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay gates: %w", err)
	}
	tokenGates, err := i.gateRepo.ListEnabled(ctx, gate.GateTypeToken, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list token gates: %w", err)
	}

	gates := append(payGates, tokenGates...)
	issues := gate.ValidateGateSet(gates)

	gateDTOs := make([]dto.GateDTO, 0, len(gates))
	for _, g := range gates {
		gateDTOs = append(gateDTOs, dto.ToGateDTO(g))
	}

	return &dto.TargetValidationDTO{
		TargetType: targetType.String(),
		TargetID:   targetID,
		Gates:      gateDTOs,
		Issues:     issues,
		HasErrors:  gate.HasErrors(issues),
	}, nil
}

// InspectAll validates every enabled gate, grouped per target
func (i *Inspector) InspectAll(ctx context.Context) ([]gate.Issue, error) {
	gates, err := i.gateRepo.ListAllEnabled(ctx)
	if err != nil {
		i.logger.Errorw("failed to list enabled gates", "error", err)
		return nil, fmt.Errorf("failed to list enabled gates: %w", err)
	}

	issues := gate.ValidateGateSet(gates)
	i.logger.Infow("gate configuration inspected",
		"gates", len(gates),
		"issues", len(issues),
	)
	return issues, nil
}
