//go:build unit || e2e

package builder

import (
	"time"

	domresource "lab-scheduler/internal/domain/resource"
	reqdto "lab-scheduler/internal/handler/dto/request"
	"lab-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	Name           string
	Description    string
	Location       string
	PhotoURL       *string
	OrganizationID uuid.UUID
	ManagerID      uuid.UUID
	Status         domresource.Status
	Version        int64
	CreatedAt      time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		Name:           "Confocal Microscope",
		Description:    "Inverted confocal microscope, 4 laser lines",
		Location:       "Building C, Room 214",
		OrganizationID: uuid.New(),
		ManagerID:      uuid.New(),
		Status:         domresource.StatusAvailable,
		Version:        1,
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ResourceBuilder) BuildDomain() (*domresource.Resource, error) {
	return domresource.NewResource(r.Name, r.Description, r.Location, r.PhotoURL, r.OrganizationID, r.ManagerID)
}

// BuildReconstructed yields a resource in an arbitrary persisted state,
// bypassing creation rules.
func (r *ResourceBuilder) BuildReconstructed(id uuid.UUID, deletedAt *time.Time) *domresource.Resource {
	return domresource.ReconstructResource(
		id, r.Name, r.Description, r.PhotoURL, r.Location,
		r.Status, r.OrganizationID, r.ManagerID, r.Version,
		deletedAt, r.CreatedAt, r.CreatedAt,
	)
}

func (r *ResourceBuilder) BuildCreateRequestDTO() reqdto.CreateResourceRequest {
	return reqdto.CreateResourceRequest{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		PhotoURL:    r.PhotoURL,
		ManagerID:   r.ManagerID,
	}
}

func (r *ResourceBuilder) BuildView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:             uuid.New(),
		Name:           r.Name,
		Description:    r.Description,
		PhotoURL:       r.PhotoURL,
		Location:       r.Location,
		Status:         string(r.Status),
		OrganizationID: r.OrganizationID,
		ManagerID:      r.ManagerID,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.CreatedAt,
	}
}

// Fluent builder methods
func (r *ResourceBuilder) WithName(name string) *ResourceBuilder {
	r.Name = name
	return r
}

func (r *ResourceBuilder) WithStatus(status domresource.Status) *ResourceBuilder {
	r.Status = status
	return r
}

func (r *ResourceBuilder) WithOrganizationID(id uuid.UUID) *ResourceBuilder {
	r.OrganizationID = id
	return r
}

func (r *ResourceBuilder) WithManagerID(id uuid.UUID) *ResourceBuilder {
	r.ManagerID = id
	return r
}

func (r *ResourceBuilder) WithVersion(version int64) *ResourceBuilder {
	r.Version = version
	return r
}
