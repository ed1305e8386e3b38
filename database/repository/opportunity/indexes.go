// File: database/repository/opportunity/indexes.go
package opportunityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the opportunity collection's indexes. The partial
// unique index on (recurrenceId, scheduledUtc) backs the no-duplicate-instant
// invariant for recurrence-owned opportunities; standalone opportunities carry
// no recurrenceId and are exempt.
func (r *mongoOpportunityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "recurrenceId", Value: 1}, {Key: "scheduledUtc", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"recurrenceId": bson.M{"$exists": true}}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
