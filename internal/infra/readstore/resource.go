package readstore

import (
	"context"
	"fmt"
	"strings"

	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/infra/db"
	"lab-scheduler/internal/pkg/pgconv"
	"lab-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx}
}

const findResourceViewSQL = `
SELECT id, name, description, photo_url, location, status, organization_id, manager_id, version, created_at, updated_at
FROM resources
WHERE id = $1 AND deleted_at IS NULL`

func (s *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	var (
		view      queries.ResourceView
		photoURL  pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, findResourceViewSQL, id).Scan(
		&view.ID, &view.Name, &view.Description, &photoURL, &view.Location, &view.Status,
		&view.OrganizationID, &view.ManagerID, &view.Version, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource view", err)
	}

	view.PhotoURL = pgconv.StringPtrFromPgtype(photoURL)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

func (s *ResourceReadStore) FindPage(ctx context.Context, filter queries.ResourceFilter, limit, offset int32) ([]*queries.ResourceView, int64, error) {
	where, args := buildResourceWhere(filter)

	countSQL := `SELECT count(*) FROM resources` + where
	var total int64
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count resources", err)
	}

	pageSQL := fmt.Sprintf(`
SELECT id, name, description, photo_url, location, status, organization_id, manager_id, version, created_at, updated_at
FROM resources
%s
ORDER BY name, id
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := s.db.Query(ctx, pageSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to query resources page", err)
	}
	defer rows.Close()

	var items []*queries.ResourceView
	for rows.Next() {
		var (
			view      queries.ResourceView
			photoURL  pgtype.Text
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&view.ID, &view.Name, &view.Description, &photoURL, &view.Location, &view.Status,
			&view.OrganizationID, &view.ManagerID, &view.Version, &createdAt, &updatedAt,
		); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan resource row", err)
		}
		view.PhotoURL = pgconv.StringPtrFromPgtype(photoURL)
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		items = append(items, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read resources page", err)
	}

	return items, total, nil
}

func buildResourceWhere(filter queries.ResourceFilter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	var args []any

	if filter.Keyword != nil {
		args = append(args, "%"+*filter.Keyword+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", n, n, n))
	}
	if filter.OrganizationID != nil {
		args = append(args, *filter.OrganizationID)
		conds = append(conds, fmt.Sprintf("organization_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	return "\nWHERE " + strings.Join(conds, " AND "), args
}
