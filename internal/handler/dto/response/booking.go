package response

import (
	"time"

	"lab-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID           uuid.UUID  `json:"id"`
	ResourceID   uuid.UUID  `json:"resourceId"`
	ResourceName string     `json:"resourceName"`
	RequesterID  uuid.UUID  `json:"requesterId"`
	ReviewerID   *uuid.UUID `json:"reviewerId,omitempty"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      time.Time  `json:"endTime"`
	Purpose      string     `json:"purpose"`
	Status       string     `json:"status"`
	RejectReason *string    `json:"rejectReason,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type BookingListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	RequesterID  uuid.UUID `json:"requesterId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Items  []*BookingListItemResponse `json:"items"`
	Total  int64                      `json:"total"`
	Limit  int32                      `json:"limit"`
	Offset int32                      `json:"offset"`
}

type ConflictResponse struct {
	Error               string      `json:"error"`
	ConflictingBookings []uuid.UUID `json:"conflictingBookings"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromBookingPage(page *queries.Page[*queries.BookingListItem]) *BookingListResponse {
	items := make([]*BookingListItemResponse, len(page.Items))
	for i, item := range page.Items {
		var resp BookingListItemResponse
		_ = copier.Copy(&resp, item)
		items[i] = &resp
	}
	return &BookingListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
