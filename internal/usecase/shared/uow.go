package shared

import (
	"context"
	"time"

	"lab-scheduler/internal/domain/booking"
	"lab-scheduler/internal/domain/resource"
	"lab-scheduler/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	// FindApprovedSlots returns the committed approved intervals for a
	// resource; run it under the resource row lock when deciding.
	FindApprovedSlots(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID) ([]booking.ApprovedSlot, error)
	HasApprovedInProgress(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, now time.Time) (bool, error)
	// UpdateStatus writes the entity's status only if the stored row still
	// holds the status the transition started from; a concurrent writer
	// winning the race yields a CONFLICT repository error.
	UpdateStatus(ctx context.Context, dbtx db.DBTX, b *booking.Booking, from booking.Status) error
	FindDueCompletions(ctx context.Context, dbtx db.DBTX, now time.Time, limit int32) ([]DueCompletion, error)
	// CompleteIfDue transitions one row approved → completed, guarded so the
	// sweep stays idempotent under concurrent runs.
	CompleteIfDue(ctx context.Context, dbtx db.DBTX, id uuid.UUID, now time.Time) (bool, error)
}

// DueCompletion is an approved booking whose end time has passed, together
// with the resource whose occupancy it may release.
type DueCompletion struct {
	BookingID  uuid.UUID
	ResourceID uuid.UUID
}

type ResourceRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, r *resource.Resource) (uuid.UUID, error)
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*resource.Resource, error)
	// FindByIDForUpdate takes the row-level lock that scopes the approval
	// critical section per resource.
	FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*resource.Resource, error)
	// UpdateStatus applies the optimistic-concurrency write; a stale
	// expectedVersion yields a VERSION_MISMATCH repository error.
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status resource.Status, expectedVersion int64) error
	SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}
