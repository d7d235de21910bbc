//go:build unit || e2e

package builder

import (
	"time"

	dombooking "lab-scheduler/internal/domain/booking"
	reqdto "lab-scheduler/internal/handler/dto/request"
	"lab-scheduler/internal/pkg/clock"
	"lab-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ResourceID   uuid.UUID
	ResourceName string
	RequesterID  uuid.UUID
	Now          time.Time
	Start        time.Time
	End          time.Time
	Purpose      string
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ResourceID:   uuid.New(),
		ResourceName: "Confocal Microscope",
		RequesterID:  uuid.New(),
		Now:          now,
		Start:        now.Add(24 * time.Hour),
		End:          now.Add(26 * time.Hour),
		Purpose:      "Imaging session for cell cultures",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	slot, err := dombooking.NewTimeSlot(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	purpose, err := dombooking.NewPurpose(b.Purpose)
	if err != nil {
		return nil, err
	}
	services := &dombooking.Services{Clock: clock.NewMockClock(b.Now)}
	return services.NewBooking(b.ResourceID, b.RequesterID, slot, purpose)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ResourceID: b.ResourceID,
		StartTime:  b.Start,
		EndTime:    b.End,
		Purpose:    b.Purpose,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:           uuid.New(),
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		RequesterID:  b.RequesterID,
		StartTime:    b.Start,
		EndTime:      b.End,
		Purpose:      b.Purpose,
		Status:       string(dombooking.StatusPending),
		CreatedAt:    b.Now,
		UpdatedAt:    b.Now,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:           uuid.New(),
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		RequesterID:  b.RequesterID,
		StartTime:    b.Start,
		EndTime:      b.End,
		Status:       string(dombooking.StatusPending),
		CreatedAt:    b.Now,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithResourceID(id uuid.UUID) *BookingBuilder {
	b.ResourceID = id
	return b
}

func (b *BookingBuilder) WithRequesterID(id uuid.UUID) *BookingBuilder {
	b.RequesterID = id
	return b
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithPurpose(purpose string) *BookingBuilder {
	b.Purpose = purpose
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}
