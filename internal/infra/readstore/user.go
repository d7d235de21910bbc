package readstore

import (
	"context"

	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/infra/db"
	"lab-scheduler/internal/pkg/pgconv"
	"lab-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

// Credentials pairs the authorized view with the stored hash for login.
type Credentials struct {
	User         queries.AuthorizedUserView
	PasswordHash string
}

const findUserByEmailSQL = `
SELECT id, email, password_hash, role, organization_id, is_active
FROM users
WHERE email = $1 AND is_active = true`

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*Credentials, error) {
	var (
		creds Credentials
		orgID pgtype.UUID
	)

	err := s.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(
		&creds.User.ID, &creds.User.Email, &creds.PasswordHash,
		&creds.User.Role, &orgID, &creds.User.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	creds.User.OrganizationID = pgconv.UUIDPtrFromPgtype(orgID)
	return &creds, nil
}

const findUserByIDSQL = `
SELECT id, email, role, organization_id, is_active
FROM users
WHERE id = $1 AND is_active = true`

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var (
		view  queries.AuthorizedUserView
		orgID pgtype.UUID
	)

	err := s.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&view.ID, &view.Email, &view.Role, &orgID, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	view.OrganizationID = pgconv.UUIDPtrFromPgtype(orgID)
	return &view, nil
}
