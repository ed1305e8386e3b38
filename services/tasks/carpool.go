// File: services/tasks/carpool.go
package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeCarpoolAttach = "carpool:attach"

// CarpoolAttachPayload is the queued request to attach a carpool record to an
// opportunity. Source records what triggered the attachment (recurrence
// generation, template update, standalone create).
type CarpoolAttachPayload struct {
	OpportunityID string `json:"opportunityId"`
	Source        string `json:"source"`
}

// NewCarpoolAttachTask builds the asynq task for one attachment.
func NewCarpoolAttachTask(payload CarpoolAttachPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCarpoolAttach, b), nil
}

// AsynqCarpoolDispatcher enqueues carpool attachments on the shared Redis
// queue. It satisfies carpool.Dispatcher: enqueue errors are logged and
// swallowed so the originating request never fails on them.
type AsynqCarpoolDispatcher struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func (d *AsynqCarpoolDispatcher) AttachLater(ctx context.Context, opportunityID, source string) {
	task, err := NewCarpoolAttachTask(CarpoolAttachPayload{
		OpportunityID: opportunityID,
		Source:        source,
	})
	if err != nil {
		d.Logger.Error("carpool task build failed", zap.String("opportunityId", opportunityID), zap.Error(err))
		return
	}
	if _, err := d.Client.EnqueueContext(ctx, task); err != nil {
		d.Logger.Error("carpool task enqueue failed", zap.String("opportunityId", opportunityID), zap.Error(err))
	}
}
