package mappers

import (
	"fmt"

	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/models"
)

// GateMapper converts gate rows into domain gates, parsing the config column
type GateMapper interface {
	ToDomain(model *models.GateModel) (*gate.Gate, error)
}

type GateMapperImpl struct{}

func NewGateMapper() GateMapper {
	return &GateMapperImpl{}
}

// ToDomain converts a gate model to a domain gate.
func (m *GateMapperImpl) ToDomain(model *models.GateModel) (*gate.Gate, error) {
	if model == nil {
		return nil, nil
	}

	g, err := gate.ReconstructGate(
		model.ID,
		gate.TargetType(model.TargetType),
		model.TargetID,
		gate.GateType(model.GateType),
		model.IsEnabled,
		model.Config,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct gate %s: %w", model.ID, err)
	}
	return g, nil
}
