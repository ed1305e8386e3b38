// File: database/repository/opportunity/crud.go
package opportunityRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voluntree/models"
)

func (r *mongoOpportunityRepo) Create(ctx context.Context, opp *models.Opportunity) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if opp.ID == "" {
		opp.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, opp)
	return err
}

func (r *mongoOpportunityRepo) GetByID(ctx context.Context, id string) (*models.Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var opp models.Opportunity
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&opp)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

func (r *mongoOpportunityRepo) GetAll(ctx context.Context) ([]models.Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduledUtc", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var opps []models.Opportunity
	if err := cursor.All(ctx, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

func (r *mongoOpportunityRepo) GetByRecurrenceID(ctx context.Context, recurrenceID string) ([]models.Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduledUtc", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"recurrenceId": recurrenceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var opps []models.Opportunity
	if err := cursor.All(ctx, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

func (r *mongoOpportunityRepo) Update(ctx context.Context, opp *models.Opportunity) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": opp.ID}, opp)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoOpportunityRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
