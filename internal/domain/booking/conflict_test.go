//go:build unit

package booking_test

import (
	"testing"
	"time"

	"lab-scheduler/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var conflictBase = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func slot(t *testing.T, startHour, endHour int) booking.TimeSlot {
	t.Helper()
	return booking.ReconstructTimeSlot(
		conflictBase.Add(time.Duration(startHour)*time.Hour),
		conflictBase.Add(time.Duration(endHour)*time.Hour),
	)
}

func TestTimeSlotOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     booking.TimeSlot
		overlaps bool
	}{
		{"identical slots", slot(t, 0, 2), slot(t, 0, 2), true},
		{"partial overlap at end", slot(t, 0, 2), slot(t, 1, 3), true},
		{"partial overlap at start", slot(t, 1, 3), slot(t, 0, 2), true},
		{"containment", slot(t, 0, 4), slot(t, 1, 2), true},
		{"contained", slot(t, 1, 2), slot(t, 0, 4), true},
		{"touching end to start", slot(t, 0, 2), slot(t, 2, 4), false},
		{"touching start to end", slot(t, 2, 4), slot(t, 0, 2), false},
		{"disjoint", slot(t, 0, 1), slot(t, 3, 4), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, c.a.Overlaps(c.b))
			// Overlap is symmetric.
			assert.Equal(t, c.overlaps, c.b.Overlaps(c.a))
		})
	}
}

func TestFindConflicts(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()
	id3 := uuid.New()

	approved := []booking.ApprovedSlot{
		{BookingID: id1, Slot: slot(t, 0, 2)},
		{BookingID: id2, Slot: slot(t, 2, 4)},
		{BookingID: id3, Slot: slot(t, 5, 7)},
	}

	t.Run("no overlap with any approved slot", func(t *testing.T) {
		got := booking.FindConflicts(slot(t, 4, 5), uuid.Nil, approved)
		assert.Empty(t, got)
	})

	t.Run("touching boundaries never conflict", func(t *testing.T) {
		got := booking.FindConflicts(slot(t, 4, 5), uuid.Nil, approved)
		assert.Empty(t, got)

		got = booking.FindConflicts(slot(t, 7, 9), uuid.Nil, approved)
		assert.Empty(t, got)
	})

	t.Run("single conflict", func(t *testing.T) {
		got := booking.FindConflicts(slot(t, 1, 2), uuid.Nil, approved)
		assert.Equal(t, []uuid.UUID{id1}, got)
	})

	t.Run("candidate spanning several approved slots", func(t *testing.T) {
		got := booking.FindConflicts(slot(t, 1, 6), uuid.Nil, approved)
		assert.Equal(t, []uuid.UUID{id1, id2, id3}, got)
	})

	t.Run("exclude id skips the booking under re-validation", func(t *testing.T) {
		got := booking.FindConflicts(slot(t, 0, 2), id1, approved)
		assert.Empty(t, got)
	})

	t.Run("exclude id keeps other collisions", func(t *testing.T) {
		got := booking.FindConflicts(slot(t, 1, 3), id1, approved)
		assert.Equal(t, []uuid.UUID{id2}, got)
	})

	t.Run("empty approved set", func(t *testing.T) {
		got := booking.FindConflicts(slot(t, 0, 2), uuid.Nil, nil)
		assert.Empty(t, got)
	})
}
