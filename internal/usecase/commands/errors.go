package commands

import (
	"fmt"

	"lab-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrValidation              = errs.New("validation error")
	ErrResourceNotFound        = errs.New("resource not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrResourceUnavailable     = errs.New("resource unavailable")
	ErrResourceBusy            = errs.New("resource has a booking in progress")
	ErrInvalidTransition       = errs.New("invalid status transition")
	ErrForbidden               = errs.New("actor not permitted")
	ErrSchedulingConflict      = errs.New("scheduling conflict")
	ErrVersionConflict         = errs.New("resource version conflict")
	ErrInvalidCredentials      = errs.New("invalid credentials")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ConflictError names the approved bookings that collide with the candidate
// interval; the reviewer inspects them and picks another slot or resource.
// Matched via errs.Is(err, ErrSchedulingConflict), extracted via errors.As.
type ConflictError struct {
	BookingIDs []uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("interval overlaps approved bookings %v", e.BookingIDs)
}

func NewConflictError(ids []uuid.UUID) error {
	return errs.Mark(&ConflictError{BookingIDs: ids}, ErrSchedulingConflict)
}
