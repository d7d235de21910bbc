package commands

import (
	"context"
	"log/slog"
	"time"

	"lab-scheduler/internal/domain/booking"
	"lab-scheduler/internal/domain/resource"
	"lab-scheduler/internal/domain/user"
	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/infra/db"
	"lab-scheduler/internal/pkg/clock"
	"lab-scheduler/internal/pkg/errs"
	"lab-scheduler/internal/usecase/queries"
	"lab-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const sweepBatchLimit = 500

// Actor is the caller identity resolved by the auth middleware.
type Actor struct {
	ID             uuid.UUID
	Role           user.Role
	OrganizationID *uuid.UUID
}

func (a Actor) capabilities() booking.Actor {
	return booking.Actor{
		ID:        a.ID,
		CanReview: a.Role.CanReview(),
	}
}

type SubmitBookingParams struct {
	ResourceID uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Purpose    string
}

// SchedulerCommands is the facade callers invoke; every mutation of bookings
// goes through here.
type SchedulerCommands interface {
	Submit(ctx context.Context, actor Actor, p SubmitBookingParams) (*queries.BookingView, error)
	Decide(ctx context.Context, actor Actor, bookingID uuid.UUID, approve bool, reason string) (*queries.BookingView, error)
	Cancel(ctx context.Context, actor Actor, bookingID uuid.UUID) (*queries.BookingView, error)
	SweepCompletions(ctx context.Context) (int, error)
}

type schedulerCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingRepo    shared.BookingRepository
	resourceRepo   shared.ResourceRepository
	bookingQueries queries.BookingQueries
	services       *booking.Services
	clock          clock.Clock
}

func NewSchedulerCommands(
	uow shared.UnitOfWork,
	bookingRepo shared.BookingRepository,
	resourceRepo shared.ResourceRepository,
	bookingQueries queries.BookingQueries,
	services *booking.Services,
	clk clock.Clock,
) SchedulerCommands {
	return &schedulerCommandsImpl{
		uow:            uow,
		bookingRepo:    bookingRepo,
		resourceRepo:   resourceRepo,
		bookingQueries: bookingQueries,
		services:       services,
		clock:          clk,
	}
}

// Submit validates interval sanity and resource availability, then records
// the booking as pending. No conflict check here: overlaps are resolved when
// a reviewer decides, so competing requests may coexist while pending.
func (s *schedulerCommandsImpl) Submit(ctx context.Context, actor Actor, p SubmitBookingParams) (*queries.BookingView, error) {
	slot, err := booking.NewTimeSlot(p.StartTime, p.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	purpose, err := booking.NewPurpose(p.Purpose)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var bookingID uuid.UUID
	err = s.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := s.resourceRepo.FindByID(ctx, tx, p.ResourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrResourceNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := res.Bookable(); err != nil {
			return errs.Mark(err, ErrResourceUnavailable)
		}

		b, err := s.services.NewBooking(res.ID(), actor.ID, slot, purpose)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		bookingID, err = s.bookingRepo.Create(ctx, tx, b)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.bookingQueries.GetByID(ctx, bookingID)
}

// Decide approves or rejects a pending booking. The approval path re-runs
// conflict detection against the committed approved set while holding the
// resource row lock, then writes the booking status and the resource side
// effect inside the same transaction. Two reviewers racing on overlapping
// pending requests therefore cannot both win.
func (s *schedulerCommandsImpl) Decide(ctx context.Context, actor Actor, bookingID uuid.UUID, approve bool, reason string) (*queries.BookingView, error) {
	cap := actor.capabilities()

	err := s.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		b, err := s.bookingRepo.FindByID(ctx, tx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookingNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		res, err := s.resourceRepo.FindByIDForUpdate(ctx, tx, b.ResourceID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrResourceNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// The first read ran before the lock was held; reload so the
		// transition starts from the status as of the critical section.
		b, err = s.bookingRepo.FindByID(ctx, tx, bookingID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if approve {
			if err := s.approveLocked(ctx, tx, b, res, cap); err != nil {
				return err
			}
		} else {
			if err := s.rejectLocked(ctx, tx, b, cap, reason); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.bookingQueries.GetByID(ctx, bookingID)
}

func (s *schedulerCommandsImpl) approveLocked(ctx context.Context, tx db.DBTX, b *booking.Booking, res *resource.Resource, cap booking.Actor) error {
	// The availability seen at submit time may be gone; an approval must not
	// quietly pull a resource out of maintenance.
	if err := res.Bookable(); err != nil {
		return errs.Mark(err, ErrResourceUnavailable)
	}

	slots, err := s.bookingRepo.FindApprovedSlots(ctx, tx, res.ID())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if conflicts := booking.FindConflicts(b.Slot(), b.ID(), slots); len(conflicts) > 0 {
		return NewConflictError(conflicts)
	}

	from := b.Status()
	if err := b.Approve(cap); err != nil {
		return mapTransitionErr(err)
	}
	if err := s.bookingRepo.UpdateStatus(ctx, tx, b, from); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, ErrInvalidTransition)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Version cannot be stale here: the row is locked.
	if res.Status() != resource.StatusReserved {
		if err := s.resourceRepo.UpdateStatus(ctx, tx, res.ID(), resource.StatusReserved, res.Version()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func (s *schedulerCommandsImpl) rejectLocked(ctx context.Context, tx db.DBTX, b *booking.Booking, cap booking.Actor, reason string) error {
	from := b.Status()
	if err := b.Reject(cap, reason); err != nil {
		if errs.Is(err, booking.ErrRejectReasonRequired) {
			return errs.Mark(err, ErrValidation)
		}
		return mapTransitionErr(err)
	}
	if err := s.bookingRepo.UpdateStatus(ctx, tx, b, from); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, ErrInvalidTransition)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// Cancel stops a pending booking, or an approved one that has not started.
func (s *schedulerCommandsImpl) Cancel(ctx context.Context, actor Actor, bookingID uuid.UUID) (*queries.BookingView, error) {
	cap := actor.capabilities()

	err := s.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		b, err := s.bookingRepo.FindByID(ctx, tx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookingNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Lock order matches Decide: resource row before booking write.
		var res *resource.Resource
		wasApproved := b.IsApproved()
		if wasApproved {
			res, err = s.resourceRepo.FindByIDForUpdate(ctx, tx, b.ResourceID())
			if err != nil && !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		from := b.Status()
		if err := b.Cancel(cap, s.clock.Now()); err != nil {
			return mapTransitionErr(err)
		}
		// A pending cancel takes no resource lock, so the compare-and-swap
		// below is what stops it from overwriting a concurrent approval.
		if err := s.bookingRepo.UpdateStatus(ctx, tx, b, from); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrInvalidTransition)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if wasApproved && res != nil && res.Status() == resource.StatusReserved {
			busy, err := s.bookingRepo.HasApprovedInProgress(ctx, tx, res.ID(), s.clock.Now())
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if !busy {
				if err := s.resourceRepo.UpdateStatus(ctx, tx, res.ID(), resource.StatusAvailable, res.Version()); err != nil {
					return errs.Mark(err, ErrDatabaseOperationFailed)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.bookingQueries.GetByID(ctx, bookingID)
}

// SweepCompletions transitions approved bookings whose end time has passed
// to completed and returns the count changed. Each row update re-checks its
// own guard, so the sweep is idempotent and safe to run concurrently with
// itself; a failure on one row never aborts the rest.
func (s *schedulerCommandsImpl) SweepCompletions(ctx context.Context) (int, error) {
	now := s.clock.Now()

	var due []shared.DueCompletion
	err := s.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		due, err = s.bookingRepo.FindDueCompletions(ctx, dbtx, now, sweepBatchLimit)
		return err
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	completed := 0
	for _, d := range due {
		err := s.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
			changed, err := s.bookingRepo.CompleteIfDue(ctx, dbtx, d.BookingID, now)
			if err != nil {
				return err
			}
			if !changed {
				// Another sweep run got here first.
				return nil
			}
			completed++
			s.releaseResourceIfIdle(ctx, dbtx, d.ResourceID, now)
			return nil
		})
		if err != nil {
			slog.Error("sweep: failed to complete booking",
				"booking_id", d.BookingID,
				"error", err.Error())
		}
	}

	return completed, nil
}

// releaseResourceIfIdle flips a reserved resource back to available once no
// approved booking is in progress. Best effort with the optimistic token; a
// lost race is left for the next sweep.
func (s *schedulerCommandsImpl) releaseResourceIfIdle(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, now time.Time) {
	res, err := s.resourceRepo.FindByID(ctx, dbtx, resourceID)
	if err != nil || res.Status() != resource.StatusReserved {
		return
	}
	busy, err := s.bookingRepo.HasApprovedInProgress(ctx, dbtx, resourceID, now)
	if err != nil || busy {
		return
	}
	if err := s.resourceRepo.UpdateStatus(ctx, dbtx, resourceID, resource.StatusAvailable, res.Version()); err != nil {
		if !infra.IsKind(err, infra.KindVersionMismatch) {
			slog.Warn("sweep: failed to release resource",
				"resource_id", resourceID,
				"error", err.Error())
		}
	}
}

func mapTransitionErr(err error) error {
	switch {
	case errs.Is(err, booking.ErrNotPermitted):
		return errs.Mark(err, ErrForbidden)
	default:
		return errs.Mark(err, ErrInvalidTransition)
	}
}
