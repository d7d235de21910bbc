package queries

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Page is an offset-paginated result set.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

// Read models (DTO for read side)
type BookingView struct {
	ID            uuid.UUID  `json:"id"`
	ResourceID    uuid.UUID  `json:"resource_id"`
	ResourceName  string     `json:"resource_name"`
	RequesterID   uuid.UUID  `json:"requester_id"`
	ReviewerID    *uuid.UUID `json:"reviewer_id,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	Purpose       string     `json:"purpose"`
	Status        string     `json:"status"`
	RejectReason  *string    `json:"reject_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	RequesterID  uuid.UUID `json:"requester_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type ResourceView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PhotoURL       *string   `json:"photo_url,omitempty"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	OrganizationID uuid.UUID `json:"organization_id"`
	ManagerID      uuid.UUID `json:"manager_id"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	IsActive       bool       `json:"is_active"`
}

// Filters are ANDed; nil fields are ignored.
type BookingFilter struct {
	RequesterID    *uuid.UUID
	ResourceID     *uuid.UUID
	Status         *string
	OrganizationID *uuid.UUID
}

type ResourceFilter struct {
	Keyword        *string
	OrganizationID *uuid.UUID
	Status         *string
}

// ClampLimit normalizes a caller-supplied page size.
func ClampLimit(limit int32) int32 {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
