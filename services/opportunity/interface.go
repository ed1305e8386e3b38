// File: services/opportunity/interface.go
package opportunity

import (
	"context"

	"voluntree/models"
)

// Service manages standalone (non-recurring) opportunities. They share storage
// with recurrence-generated ones but carry no recurrence link and never pass
// through the recurring-schedule engine.
type Service interface {
	Create(ctx context.Context, req models.CreateOpportunityRequest) (*models.Opportunity, error)
	GetByID(ctx context.Context, id string) (*models.Opportunity, error)
	GetAll(ctx context.Context) ([]models.Opportunity, error)
	Update(ctx context.Context, id string, req models.UpdateOpportunityRequest) (*models.Opportunity, error)
	Delete(ctx context.Context, id string) error
}
