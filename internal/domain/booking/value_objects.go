package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const MaxPurposeLength = 500

var (
	ErrInvalidTimeSlot = errors.New("start time must be before end time")
	ErrStartInPast     = errors.New("start time cannot be in the past")
	ErrEmptyPurpose    = errors.New("purpose is required")
	ErrPurposeTooLong  = errors.New("purpose too long")
)

// TimeSlot is a half-open interval [start, end). Ordering is enforced at
// construction and immutable afterward; edits require cancel plus re-create.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

// ReconstructTimeSlot rebuilds a slot from storage without re-validating;
// rows were validated at creation and are immutable afterward.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// ValidateStartAt rejects slots that begin before the given instant.
func (ts TimeSlot) ValidateStartAt(now time.Time) error {
	if ts.start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

// Overlaps uses the half-open test: [a,b) and [c,d) collide iff a < d && c < b.
// Touching slots (end == start) do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) HasStarted(now time.Time) bool {
	return !now.Before(ts.start)
}

func (ts TimeSlot) HasEnded(now time.Time) bool {
	return !now.Before(ts.end)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

type Purpose struct {
	value string
}

func NewPurpose(value string) (Purpose, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Purpose{}, ErrEmptyPurpose
	}
	if len(trimmed) > MaxPurposeLength {
		return Purpose{}, ErrPurposeTooLong
	}
	return Purpose{value: trimmed}, nil
}

func ReconstructPurpose(value string) Purpose {
	return Purpose{value: value}
}

func (p Purpose) String() string {
	return p.value
}
