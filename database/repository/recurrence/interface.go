// File: database/repository/recurrence/interface.go
package recurrenceRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"voluntree/database"
	"voluntree/models"
)

// RecurrenceRepository defines data access for recurrence definitions and the
// multi-document transactions that keep them consistent with their generated
// opportunities. Not-found lookups return (nil, nil).
type RecurrenceRepository interface {
	GetByID(ctx context.Context, id string) (*models.RecurrenceDefinition, error)
	GetAll(ctx context.Context) ([]models.RecurrenceDefinition, error)
	Update(ctx context.Context, def *models.RecurrenceDefinition) error

	// CreateWithInstances persists the definition and its full generated batch
	// in one transaction. Opportunities without ids are assigned one in place.
	CreateWithInstances(ctx context.Context, def *models.RecurrenceDefinition, opps []models.Opportunity) error
	// PropagateTemplate updates the definition and applies the given template
	// fields to every owned opportunity, in one transaction.
	PropagateTemplate(ctx context.Context, def *models.RecurrenceDefinition, fields map[string]interface{}) error
	// CommitRemap writes the rewritten slot list and every moved opportunity
	// in one transaction; a failure rolls the whole batch back.
	CommitRemap(ctx context.Context, def *models.RecurrenceDefinition, moved []models.Opportunity) error
	// Delete removes the definition and cascades deletion of its opportunities.
	Delete(ctx context.Context, id string) error
}

type mongoRecurrenceRepo struct {
	defColl *mongo.Collection
	oppColl *mongo.Collection
}

// NewMongoRecurrenceRepo constructs a MongoDB RecurrenceRepository.
func NewMongoRecurrenceRepo() RecurrenceRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &mongoRecurrenceRepo{
		defColl: db.Collection("recurrences"),
		oppColl: db.Collection("opportunities"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create recurrence indexes: %v\n", err)
	}
	return repo
}
