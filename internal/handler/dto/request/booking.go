package request

import (
	"strings"
	"time"

	"lab-scheduler/internal/usecase/commands"
	"lab-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Purpose    string    `json:"purpose" binding:"required"`
}

func (r CreateBookingRequest) ToParams() commands.SubmitBookingParams {
	return commands.SubmitBookingParams{
		ResourceID: r.ResourceID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Purpose:    strings.TrimSpace(r.Purpose),
	}
}

type DecideBookingRequest struct {
	Approve *bool   `json:"approve" binding:"required"`
	Reason  *string `json:"reason,omitempty"`
}

func (r DecideBookingRequest) GetReason() string {
	if r.Reason == nil {
		return ""
	}
	return strings.TrimSpace(*r.Reason)
}

type ListBookingsQuery struct {
	RequesterID    string `form:"requester_id"`
	ResourceID     string `form:"resource_id"`
	Status         string `form:"status"`
	OrganizationID string `form:"organization_id"`
	Limit          int32  `form:"limit"`
	Offset         int32  `form:"offset"`
}

func (q ListBookingsQuery) ToFilter() (queries.BookingFilter, error) {
	requesterID, err := parseOptionalUUID(q.RequesterID)
	if err != nil {
		return queries.BookingFilter{}, err
	}
	resourceID, err := parseOptionalUUID(q.ResourceID)
	if err != nil {
		return queries.BookingFilter{}, err
	}
	orgID, err := parseOptionalUUID(q.OrganizationID)
	if err != nil {
		return queries.BookingFilter{}, err
	}
	return queries.BookingFilter{
		RequesterID:    requesterID,
		ResourceID:     resourceID,
		Status:         normalizeOptional(strings.ToLower(q.Status)),
		OrganizationID: orgID,
	}, nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func normalizeOptional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
