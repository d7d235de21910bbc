package repository

import (
	"context"

	"lab-scheduler/internal/domain/resource"
	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/infra/db"
	"lab-scheduler/internal/pkg/pgconv"
	"lab-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ResourceRepository struct{}

func NewResourceRepository() shared.ResourceRepository {
	return &ResourceRepository{}
}

const createResourceSQL = `
INSERT INTO resources (id, name, description, photo_url, location, status, organization_id, manager_id, version)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

func (r *ResourceRepository) Create(ctx context.Context, dbtx db.DBTX, res *resource.Resource) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createResourceSQL,
		res.ID(),
		res.Name(),
		res.Description(),
		pgconv.StringPtrToPgtype(res.PhotoURL()),
		res.Location(),
		res.Status().String(),
		res.OrganizationID(),
		res.ManagerID(),
		res.Version(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create resource", err)
	}
	return id, nil
}

const findResourceByIDSQL = `
SELECT id, name, description, photo_url, location, status, organization_id, manager_id, version, deleted_at, created_at, updated_at
FROM resources
WHERE id = $1 AND deleted_at IS NULL`

func (r *ResourceRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*resource.Resource, error) {
	return r.findByID(ctx, dbtx, id, findResourceByIDSQL)
}

const findResourceByIDForUpdateSQL = findResourceByIDSQL + `
FOR UPDATE`

// FindByIDForUpdate locks the resource row for the rest of the enclosing
// transaction. Two decide() calls on the same resource serialize here.
func (r *ResourceRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*resource.Resource, error) {
	return r.findByID(ctx, dbtx, id, findResourceByIDForUpdateSQL)
}

func (r *ResourceRepository) findByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID, query string) (*resource.Resource, error) {
	var (
		resourceID     uuid.UUID
		name           string
		description    string
		photoURL       pgtype.Text
		location       string
		status         string
		organizationID uuid.UUID
		managerID      uuid.UUID
		version        int64
		deletedAt      pgtype.Timestamptz
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := dbtx.QueryRow(ctx, query, id).Scan(
		&resourceID, &name, &description, &photoURL, &location, &status,
		&organizationID, &managerID, &version, &deletedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	return resource.ReconstructResource(
		resourceID,
		name,
		description,
		pgconv.StringPtrFromPgtype(photoURL),
		location,
		resource.Status(status),
		organizationID,
		managerID,
		version,
		pgconv.TimePtrFromPgtype(deletedAt),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const updateResourceStatusSQL = `
UPDATE resources
SET status = $2, version = version + 1, updated_at = now()
WHERE id = $1 AND version = $3 AND deleted_at IS NULL`

const resourceExistsSQL = `
SELECT EXISTS (SELECT 1 FROM resources WHERE id = $1 AND deleted_at IS NULL)`

// UpdateStatus is the optimistic-concurrency write: zero rows affected on an
// existing row means another writer bumped the version first.
func (r *ResourceRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status resource.Status, expectedVersion int64) error {
	tag, err := dbtx.Exec(ctx, updateResourceStatusSQL, id, status.String(), expectedVersion)
	if err != nil {
		return infra.WrapRepoErr("failed to update resource status", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := dbtx.QueryRow(ctx, resourceExistsSQL, id).Scan(&exists); err != nil {
		return infra.WrapRepoErr("failed to check resource existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("resource version mismatch", nil, infra.KindVersionMismatch)
}

const softDeleteResourceSQL = `
UPDATE resources
SET deleted_at = now(), version = version + 1, updated_at = now()
WHERE id = $1 AND deleted_at IS NULL`

func (r *ResourceRepository) SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, softDeleteResourceSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to soft delete resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}
