package booking

import (
	"errors"
	"strings"
	"time"

	"lab-scheduler/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrNotPermitted         = errors.New("actor not permitted for this transition")
	ErrRejectReasonRequired = errors.New("reject reason is required")
	ErrAlreadyStarted       = errors.New("booking has already started")
	ErrNotYetEnded          = errors.New("booking has not ended yet")
)

// Actor carries the capabilities resolved once per call at the facade
// boundary. Transition guards read these booleans instead of re-deriving
// roles mid-transition.
type Actor struct {
	ID        uuid.UUID
	CanReview bool
}

func (a Actor) isRequesterOf(b *Booking) bool {
	return a.ID == b.requesterID
}

type Booking struct {
	id           uuid.UUID
	resourceID   uuid.UUID
	requesterID  uuid.UUID
	reviewerID   *uuid.UUID
	slot         TimeSlot
	purpose      Purpose
	status       Status
	rejectReason *string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewBooking creates a pending reservation request. Conflict checking is
// deliberately absent here: overlaps are resolved at decision time.
func (s *Services) NewBooking(resourceID, requesterID uuid.UUID, slot TimeSlot, purpose Purpose) (*Booking, error) {
	if err := slot.ValidateStartAt(s.Clock.Now()); err != nil {
		return nil, err
	}

	return &Booking{
		id:          uuid.New(),
		resourceID:  resourceID,
		requesterID: requesterID,
		slot:        slot,
		purpose:     purpose,
		status:      StatusPending,
	}, nil
}

type Services struct {
	Clock clock.Clock
}

func ReconstructBooking(
	id, resourceID, requesterID uuid.UUID,
	reviewerID *uuid.UUID,
	slot TimeSlot,
	purpose Purpose,
	status Status,
	rejectReason *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		resourceID:   resourceID,
		requesterID:  requesterID,
		reviewerID:   reviewerID,
		slot:         slot,
		purpose:      purpose,
		status:       status,
		rejectReason: rejectReason,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Approve moves pending → approved. The caller must have already verified,
// under the resource-scoped lock, that the slot collides with no other
// approved booking.
func (b *Booking) Approve(actor Actor) error {
	if !b.status.CanTransitionTo(StatusApproved) {
		return ErrInvalidTransition
	}
	if !actor.CanReview {
		return ErrNotPermitted
	}
	b.status = StatusApproved
	id := actor.ID
	b.reviewerID = &id
	return nil
}

// Reject moves pending → rejected and records the reason.
func (b *Booking) Reject(actor Actor, reason string) error {
	if !b.status.CanTransitionTo(StatusRejected) {
		return ErrInvalidTransition
	}
	if !actor.CanReview {
		return ErrNotPermitted
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectReasonRequired
	}
	b.status = StatusRejected
	id := actor.ID
	b.reviewerID = &id
	b.rejectReason = &reason
	return nil
}

// Cancel is allowed for the requester or a reviewer while the booking is
// pending, or approved but not yet started.
func (b *Booking) Cancel(actor Actor, now time.Time) error {
	if !actor.isRequesterOf(b) && !actor.CanReview {
		return ErrNotPermitted
	}

	switch b.status {
	case StatusPending:
		b.status = StatusCanceled
		return nil
	case StatusApproved:
		if b.slot.HasStarted(now) {
			return ErrAlreadyStarted
		}
		b.status = StatusCanceled
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Complete is the scheduler's time-triggered transition approved → completed.
func (b *Booking) Complete(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return ErrInvalidTransition
	}
	if !b.slot.HasEnded(now) {
		return ErrNotYetEnded
	}
	b.status = StatusCompleted
	return nil
}

func (b *Booking) IsPending() bool  { return b.status == StatusPending }
func (b *Booking) IsApproved() bool { return b.status == StatusApproved }

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) RequesterID() uuid.UUID { return b.requesterID }
func (b *Booking) ReviewerID() *uuid.UUID { return b.reviewerID }
func (b *Booking) Slot() TimeSlot        { return b.slot }
func (b *Booking) Purpose() Purpose      { return b.purpose }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) RejectReason() *string { return b.rejectReason }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
