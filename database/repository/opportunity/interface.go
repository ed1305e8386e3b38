// File: database/repository/opportunity/interface.go
package opportunityRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"voluntree/database"
	"voluntree/models"
)

// OpportunityRepository defines data access for scheduled opportunities, both
// recurrence-owned and standalone. Not-found lookups return (nil, nil).
type OpportunityRepository interface {
	Create(ctx context.Context, opp *models.Opportunity) error
	GetByID(ctx context.Context, id string) (*models.Opportunity, error)
	GetAll(ctx context.Context) ([]models.Opportunity, error)
	// GetByRecurrenceID returns the recurrence's opportunities sorted by
	// scheduled instant, then id, so digest output is stable.
	GetByRecurrenceID(ctx context.Context, recurrenceID string) ([]models.Opportunity, error)
	Update(ctx context.Context, opp *models.Opportunity) error
	Delete(ctx context.Context, id string) error
}

type mongoOpportunityRepo struct {
	coll *mongo.Collection
}

// NewMongoOpportunityRepo constructs a MongoDB OpportunityRepository.
func NewMongoOpportunityRepo() OpportunityRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &mongoOpportunityRepo{
		coll: db.Collection("opportunities"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create opportunity indexes: %v\n", err)
	}
	return repo
}
