// File: database/repository/recurrence/transaction.go
package recurrenceRepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"voluntree/models"
)

// runTxn executes fn inside one Mongo multi-document transaction: any error
// aborts, leaving no partial writes.
func (r *mongoRecurrenceRepo) runTxn(ctx context.Context, label string, fn func(sc mongo.SessionContext) error) error {
	client := r.defColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("%s transaction failed: %w", label, err)
	}
	return nil
}

func (r *mongoRecurrenceRepo) CreateWithInstances(ctx context.Context, def *models.RecurrenceDefinition, opps []models.Opportunity) error {
	return r.runTxn(ctx, "recurrence create", func(sc mongo.SessionContext) error {
		if _, err := r.defColl.InsertOne(sc, def); err != nil {
			return fmt.Errorf("insert recurrence failed: %w", err)
		}
		if len(opps) == 0 {
			return nil
		}
		docs := make([]interface{}, len(opps))
		for i := range opps {
			if opps[i].ID == "" {
				opps[i].ID = uuid.New().String()
			}
			docs[i] = opps[i]
		}
		if _, err := r.oppColl.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert opportunities failed: %w", err)
		}
		return nil
	})
}

func (r *mongoRecurrenceRepo) PropagateTemplate(ctx context.Context, def *models.RecurrenceDefinition, fields map[string]interface{}) error {
	return r.runTxn(ctx, "template propagation", func(sc mongo.SessionContext) error {
		res, err := r.defColl.ReplaceOne(sc, bson.M{"id": def.ID}, def)
		if err != nil {
			return fmt.Errorf("update recurrence failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return mongo.ErrNoDocuments
		}
		if len(fields) == 0 {
			return nil
		}
		set := bson.M{}
		for k, v := range fields {
			set[k] = v
		}
		if _, err := r.oppColl.UpdateMany(sc, bson.M{"recurrenceId": def.ID}, bson.M{"$set": set}); err != nil {
			return fmt.Errorf("propagate to opportunities failed: %w", err)
		}
		return nil
	})
}

func (r *mongoRecurrenceRepo) CommitRemap(ctx context.Context, def *models.RecurrenceDefinition, moved []models.Opportunity) error {
	return r.runTxn(ctx, "remap", func(sc mongo.SessionContext) error {
		res, err := r.defColl.UpdateOne(sc,
			bson.M{"id": def.ID},
			bson.M{"$set": bson.M{"slots": def.Slots}},
		)
		if err != nil {
			return fmt.Errorf("update slot list failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return mongo.ErrNoDocuments
		}
		for i := range moved {
			opp := &moved[i]
			if _, err := r.oppColl.UpdateOne(sc,
				bson.M{"id": opp.ID, "recurrenceId": def.ID},
				bson.M{"$set": bson.M{"scheduledUtc": opp.ScheduledUTC, "duration": opp.Duration}},
			); err != nil {
				return fmt.Errorf("move opportunity %s failed: %w", opp.ID, err)
			}
		}
		return nil
	})
}

func (r *mongoRecurrenceRepo) Delete(ctx context.Context, id string) error {
	return r.runTxn(ctx, "recurrence delete", func(sc mongo.SessionContext) error {
		res, err := r.defColl.DeleteOne(sc, bson.M{"id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		// Cascade: a recurrence never outlives its opportunities.
		if _, err := r.oppColl.DeleteMany(sc, bson.M{"recurrenceId": id}); err != nil {
			return fmt.Errorf("cascade delete opportunities failed: %w", err)
		}
		return nil
	})
}
