package repository

import (
	"context"

	"github.com/vitaboard/backend/domain"
)

// ActivityRepository is the record-store port for activities. Every operation
// is scoped by the owning user's id.
type ActivityRepository interface {
	// ListByOwner returns the owner's full activity collection.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Activity, error)
	// CreateBatch inserts the given records, generating ids for any that lack
	// one, and returns the stored records.
	CreateBatch(ctx context.Context, activities []domain.Activity) ([]domain.Activity, error)
	// Update applies a partial field update to one record.
	Update(ctx context.Context, ownerID, id string, patch domain.ActivityPatch) error
	// Delete removes exactly one record.
	Delete(ctx context.Context, ownerID, id string) error
	// DeleteByRoutine removes every record sharing the routine id and returns
	// how many were removed.
	DeleteByRoutine(ctx context.Context, ownerID, routineID string) (int64, error)
	// DeleteByOwner removes every record for the owner.
	DeleteByOwner(ctx context.Context, ownerID string) error
	// MarkOverdue flips pending records dated strictly before the given
	// calendar date to late, across all owners. Returns the affected count.
	MarkOverdue(ctx context.Context, before string) (int64, error)
}
