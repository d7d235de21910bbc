package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxNameLength = 120

var (
	ErrEmptyName         = errors.New("resource name is required")
	ErrNameTooLong       = errors.New("resource name too long")
	ErrInvalidStatus     = errors.New("invalid resource status")
	ErrUnderMaintenance  = errors.New("resource is under maintenance")
	ErrResourceDeleted   = errors.New("resource has been deleted")
	ErrMissingOrgID      = errors.New("owning organization is required")
	ErrMissingManagerID  = errors.New("resource manager is required")
	ErrIllegalStatusFlip = errors.New("status change not allowed")
)

// Resource is a reservable physical asset. The version field is the
// optimistic-concurrency token: every persisted write must carry the version
// it read, and the store bumps it on success.
type Resource struct {
	id             uuid.UUID
	name           string
	description    string
	photoURL       *string
	location       string
	status         Status
	organizationID uuid.UUID
	managerID      uuid.UUID
	version        int64
	deletedAt      *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewResource(name, description, location string, photoURL *string, organizationID, managerID uuid.UUID) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if organizationID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	if managerID == uuid.Nil {
		return nil, ErrMissingManagerID
	}

	return &Resource{
		id:             uuid.New(),
		name:           name,
		description:    strings.TrimSpace(description),
		photoURL:       photoURL,
		location:       strings.TrimSpace(location),
		status:         StatusAvailable,
		organizationID: organizationID,
		managerID:      managerID,
		version:        1,
	}, nil
}

func ReconstructResource(
	id uuid.UUID,
	name, description string,
	photoURL *string,
	location string,
	status Status,
	organizationID, managerID uuid.UUID,
	version int64,
	deletedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:             id,
		name:           name,
		description:    description,
		photoURL:       photoURL,
		location:       location,
		status:         status,
		organizationID: organizationID,
		managerID:      managerID,
		version:        version,
		deletedAt:      deletedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Bookable reports whether new booking requests may target this resource.
// Reserved resources stay bookable: submission never conflict-checks, only
// approval does.
func (r *Resource) Bookable() error {
	if r.deletedAt != nil {
		return ErrResourceDeleted
	}
	if r.status == StatusMaintenance {
		return ErrUnderMaintenance
	}
	return nil
}

func (r *Resource) IsDeleted() bool {
	return r.deletedAt != nil
}

func (r *Resource) ID() uuid.UUID             { return r.id }
func (r *Resource) Name() string              { return r.name }
func (r *Resource) Description() string       { return r.description }
func (r *Resource) PhotoURL() *string         { return r.photoURL }
func (r *Resource) Location() string          { return r.location }
func (r *Resource) Status() Status            { return r.status }
func (r *Resource) OrganizationID() uuid.UUID { return r.organizationID }
func (r *Resource) ManagerID() uuid.UUID      { return r.managerID }
func (r *Resource) Version() int64            { return r.version }
func (r *Resource) DeletedAt() *time.Time     { return r.deletedAt }
func (r *Resource) CreatedAt() time.Time      { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time      { return r.updatedAt }
