package repository

import (
	"context"
	"time"

	"lab-scheduler/internal/domain/booking"
	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/infra/db"
	"lab-scheduler/internal/pkg/pgconv"
	"lab-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct{}

func NewBookingRepository() shared.BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (id, resource_id, requester_id, start_time, end_time, purpose, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

// Create persists a new booking. Status is forced to pending regardless of
// the entity's current value.
func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.ResourceID(),
		b.RequesterID(),
		b.Slot().Start(),
		b.Slot().End(),
		b.Purpose().String(),
		booking.StatusPending.String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const findBookingByIDSQL = `
SELECT id, resource_id, requester_id, reviewer_id, start_time, end_time, purpose, status, reject_reason, created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *BookingRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	var (
		bookingID    uuid.UUID
		resourceID   uuid.UUID
		requesterID  uuid.UUID
		reviewerID   pgtype.UUID
		startTime    time.Time
		endTime      time.Time
		purpose      string
		status       string
		rejectReason pgtype.Text
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)

	err := dbtx.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&bookingID, &resourceID, &requesterID, &reviewerID,
		&startTime, &endTime, &purpose, &status, &rejectReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return booking.ReconstructBooking(
		bookingID,
		resourceID,
		requesterID,
		pgconv.UUIDPtrFromPgtype(reviewerID),
		booking.ReconstructTimeSlot(startTime, endTime),
		booking.ReconstructPurpose(purpose),
		booking.Status(status),
		pgconv.StringPtrFromPgtype(rejectReason),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const findApprovedSlotsSQL = `
SELECT id, start_time, end_time
FROM bookings
WHERE resource_id = $1 AND status = 'approved'`

func (r *BookingRepository) FindApprovedSlots(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID) ([]booking.ApprovedSlot, error) {
	rows, err := dbtx.Query(ctx, findApprovedSlotsSQL, resourceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query approved slots", err)
	}
	defer rows.Close()

	var slots []booking.ApprovedSlot
	for rows.Next() {
		var (
			id         uuid.UUID
			start, end time.Time
		)
		if err := rows.Scan(&id, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan approved slot", err)
		}
		slots = append(slots, booking.ApprovedSlot{
			BookingID: id,
			Slot:      booking.ReconstructTimeSlot(start, end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read approved slots", err)
	}
	return slots, nil
}

const hasApprovedInProgressSQL = `
SELECT EXISTS (
	SELECT 1
	FROM bookings
	WHERE resource_id = $1 AND status = 'approved' AND start_time <= $2 AND end_time > $2
)`

func (r *BookingRepository) HasApprovedInProgress(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, now time.Time) (bool, error) {
	var inProgress bool
	if err := dbtx.QueryRow(ctx, hasApprovedInProgressSQL, resourceID, now).Scan(&inProgress); err != nil {
		return false, infra.WrapRepoErr("failed to check in-progress bookings", err)
	}
	return inProgress, nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, reviewer_id = $3, reject_reason = $4, updated_at = now()
WHERE id = $1 AND status = $5`

// UpdateStatus is a compare-and-swap on the status column: the write lands
// only if the row still holds the status the entity transitioned from. Zero
// rows affected means a concurrent writer moved the booking first.
func (r *BookingRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, b *booking.Booking, from booking.Status) error {
	tag, err := dbtx.Exec(ctx, updateBookingStatusSQL,
		b.ID(),
		b.Status().String(),
		pgconv.UUIDPtrToPgtype(b.ReviewerID()),
		pgconv.StringPtrToPgtype(b.RejectReason()),
		from.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

const findDueCompletionsSQL = `
SELECT id, resource_id
FROM bookings
WHERE status = 'approved' AND end_time <= $1
ORDER BY end_time
LIMIT $2`

func (r *BookingRepository) FindDueCompletions(ctx context.Context, dbtx db.DBTX, now time.Time, limit int32) ([]shared.DueCompletion, error) {
	rows, err := dbtx.Query(ctx, findDueCompletionsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query due completions", err)
	}
	defer rows.Close()

	var due []shared.DueCompletion
	for rows.Next() {
		var d shared.DueCompletion
		if err := rows.Scan(&d.BookingID, &d.ResourceID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan due completion", err)
		}
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read due completions", err)
	}
	return due, nil
}

const completeIfDueSQL = `
UPDATE bookings
SET status = 'completed', updated_at = now()
WHERE id = $1 AND status = 'approved' AND end_time <= $2`

// CompleteIfDue re-checks status and deadline in the write itself, so two
// overlapping sweep runs change any given row at most once.
func (r *BookingRepository) CompleteIfDue(ctx context.Context, dbtx db.DBTX, id uuid.UUID, now time.Time) (bool, error) {
	tag, err := dbtx.Exec(ctx, completeIfDueSQL, id, now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to complete booking", err)
	}
	return tag.RowsAffected() > 0, nil
}
