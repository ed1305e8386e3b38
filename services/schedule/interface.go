// File: services/schedule/interface.go
package schedule

import (
	"context"

	"voluntree/models"
)

// Service is the recurring-opportunity engine: creation with full instance
// generation, template propagation, slot digests and slot remapping.
type Service interface {
	CreateRecurrence(ctx context.Context, req models.CreateRecurrenceRequest) (*models.RecurrenceDefinition, []models.Opportunity, error)
	GetRecurrence(ctx context.Context, id string) (*models.RecurrenceDefinition, error)
	ListRecurrences(ctx context.Context) ([]models.RecurrenceDefinition, error)
	UpdateTemplate(ctx context.Context, id string, req models.UpdateRecurrenceRequest) (*models.RecurrenceDefinition, []models.Opportunity, error)
	UpdateVisibility(ctx context.Context, id string, visibility []string) (*models.RecurrenceDefinition, error)
	DeleteRecurrence(ctx context.Context, id string) error
	SlotDigest(ctx context.Context, id string) (*models.SlotDigest, error)
	RemapSlots(ctx context.Context, id string, mappings []models.SlotMapping) (*models.RemapResult, error)
}

// Locker serializes whole remap batches per recurrence. The conflict check is
// optimistic against stored state, so concurrent batches on one recurrence
// must not interleave between check and commit.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func() error) error
}
