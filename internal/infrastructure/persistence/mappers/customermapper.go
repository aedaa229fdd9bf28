package mappers

import (
	"time"

	"github.com/ba6/gatekeeper/internal/domain/entitlement"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/models"
)

// CustomerMapper converts Stripe customer rows into domain customers
type CustomerMapper interface {
	ToDomain(model *models.StripeCustomerModel) (*entitlement.Customer, error)
}

type CustomerMapperImpl struct{}

func NewCustomerMapper() CustomerMapper {
	return &CustomerMapperImpl{}
}

func (m *CustomerMapperImpl) ToDomain(model *models.StripeCustomerModel) (*entitlement.Customer, error) {
	if model == nil {
		return nil, nil
	}

	var email string
	if model.Email != nil {
		email = *model.Email
	}

	var createdAt time.Time
	if model.Created > 0 {
		createdAt = time.Unix(model.Created, 0).UTC()
	}

	return entitlement.ReconstructCustomer(model.ID, email, model.Deleted, createdAt)
}
