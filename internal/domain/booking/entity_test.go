//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"lab-scheduler/internal/domain/booking"
	"lab-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Nil(t, actual.ReviewerID())
		assert.Nil(t, actual.RejectReason())
		assert.Equal(t, "Imaging session for cell cultures", actual.Purpose().String())
	})

	t.Run("time slot validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "start equals end",
				mutate: func(b *builder.BookingBuilder) {
					b.WithSlot(b.Start, b.Start)
				},
				errIs: booking.ErrInvalidTimeSlot,
			},
			{
				name: "start after end",
				mutate: func(b *builder.BookingBuilder) {
					b.WithSlot(b.End, b.Start)
				},
				errIs: booking.ErrInvalidTimeSlot,
			},
			{
				name: "start in the past",
				mutate: func(b *builder.BookingBuilder) {
					b.WithSlot(b.Now.Add(-time.Hour), b.Now.Add(time.Hour))
				},
				errIs: booking.ErrStartInPast,
			},
			{
				name: "start exactly now",
				mutate: func(b *builder.BookingBuilder) {
					b.WithSlot(b.Now, b.Now.Add(time.Hour))
				},
			},
			{
				name:   "one minute slot",
				mutate: func(b *builder.BookingBuilder) { b.WithSlot(b.Start, b.Start.Add(time.Minute)) },
			},
		})
	})

	t.Run("purpose validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty purpose",
				mutate: func(b *builder.BookingBuilder) { b.WithPurpose("") },
				errIs:  booking.ErrEmptyPurpose,
			},
			{
				name:   "whitespace only purpose",
				mutate: func(b *builder.BookingBuilder) { b.WithPurpose("   ") },
				errIs:  booking.ErrEmptyPurpose,
			},
			{
				name: "maximum length purpose",
				mutate: func(b *builder.BookingBuilder) {
					b.WithPurpose(strings.Repeat("a", booking.MaxPurposeLength))
				},
			},
			{
				name: "purpose exceeds maximum length",
				mutate: func(b *builder.BookingBuilder) {
					b.WithPurpose(strings.Repeat("a", booking.MaxPurposeLength+1))
				},
				errIs: booking.ErrPurposeTooLong,
			},
		})
	})

	t.Run("purpose trimming", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithPurpose("  padded purpose  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "padded purpose", actual.Purpose().String())
	})
}

func TestBookingApprove(t *testing.T) {
	reviewer := booking.Actor{ID: uuid.New(), CanReview: true}
	member := booking.Actor{ID: uuid.New(), CanReview: false}

	t.Run("reviewer approves pending booking", func(t *testing.T) {
		b := mustBuild(t)

		require.NoError(t, b.Approve(reviewer))
		assert.Equal(t, booking.StatusApproved, b.Status())
		require.NotNil(t, b.ReviewerID())
		assert.Equal(t, reviewer.ID, *b.ReviewerID())
	})

	t.Run("member cannot approve", func(t *testing.T) {
		b := mustBuild(t)

		require.ErrorIs(t, b.Approve(member), booking.ErrNotPermitted)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("approved booking cannot be approved again", func(t *testing.T) {
		b := mustBuild(t)
		require.NoError(t, b.Approve(reviewer))

		require.ErrorIs(t, b.Approve(reviewer), booking.ErrInvalidTransition)
	})
}

func TestBookingReject(t *testing.T) {
	reviewer := booking.Actor{ID: uuid.New(), CanReview: true}

	t.Run("reviewer rejects with reason", func(t *testing.T) {
		b := mustBuild(t)

		require.NoError(t, b.Reject(reviewer, "slot is reserved weekly for calibration"))
		assert.Equal(t, booking.StatusRejected, b.Status())
		require.NotNil(t, b.RejectReason())
		assert.Equal(t, "slot is reserved weekly for calibration", *b.RejectReason())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		b := mustBuild(t)

		require.ErrorIs(t, b.Reject(reviewer, "   "), booking.ErrRejectReasonRequired)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("member cannot reject", func(t *testing.T) {
		b := mustBuild(t)
		member := booking.Actor{ID: uuid.New(), CanReview: false}

		require.ErrorIs(t, b.Reject(member, "nope"), booking.ErrNotPermitted)
	})

	t.Run("rejected booking is terminal", func(t *testing.T) {
		b := mustBuild(t)
		require.NoError(t, b.Reject(reviewer, "maintenance window"))

		require.ErrorIs(t, b.Approve(reviewer), booking.ErrInvalidTransition)
		require.ErrorIs(t, b.Cancel(reviewer, time.Now()), booking.ErrInvalidTransition)
	})
}

func TestBookingCancel(t *testing.T) {
	reviewer := booking.Actor{ID: uuid.New(), CanReview: true}

	t.Run("requester cancels pending booking", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		requester := booking.Actor{ID: bb.RequesterID, CanReview: false}
		require.NoError(t, b.Cancel(requester, bb.Now))
		assert.Equal(t, booking.StatusCanceled, b.Status())
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		b := mustBuild(t)
		stranger := booking.Actor{ID: uuid.New(), CanReview: false}

		require.ErrorIs(t, b.Cancel(stranger, time.Now()), booking.ErrNotPermitted)
	})

	t.Run("approved booking cancels before start", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Approve(reviewer))

		require.NoError(t, b.Cancel(reviewer, bb.Start.Add(-time.Minute)))
		assert.Equal(t, booking.StatusCanceled, b.Status())
	})

	t.Run("approved booking cannot cancel after start", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Approve(reviewer))

		require.ErrorIs(t, b.Cancel(reviewer, bb.Start), booking.ErrAlreadyStarted)
		assert.Equal(t, booking.StatusApproved, b.Status())
	})
}

func TestBookingComplete(t *testing.T) {
	reviewer := booking.Actor{ID: uuid.New(), CanReview: true}

	t.Run("approved booking completes after end", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Approve(reviewer))

		require.NoError(t, b.Complete(bb.End))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("approved booking cannot complete before end", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Approve(reviewer))

		require.ErrorIs(t, b.Complete(bb.End.Add(-time.Second)), booking.ErrNotYetEnded)
	})

	t.Run("pending booking cannot complete", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.Complete(bb.End), booking.ErrInvalidTransition)
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{booking.StatusPending, booking.StatusApproved, true},
		{booking.StatusPending, booking.StatusRejected, true},
		{booking.StatusPending, booking.StatusCanceled, false},
		{booking.StatusPending, booking.StatusCompleted, false},
		{booking.StatusApproved, booking.StatusCanceled, true},
		{booking.StatusApproved, booking.StatusCompleted, true},
		{booking.StatusApproved, booking.StatusPending, false},
		{booking.StatusApproved, booking.StatusRejected, false},
		{booking.StatusRejected, booking.StatusApproved, false},
		{booking.StatusCanceled, booking.StatusApproved, false},
		{booking.StatusCompleted, booking.StatusCanceled, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}

	assert.False(t, booking.StatusPending.IsTerminal())
	assert.False(t, booking.StatusApproved.IsTerminal())
	assert.True(t, booking.StatusRejected.IsTerminal())
	assert.True(t, booking.StatusCanceled.IsTerminal())
	assert.True(t, booking.StatusCompleted.IsTerminal())
}

func mustBuild(t *testing.T) *booking.Booking {
	t.Helper()
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	return b
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
