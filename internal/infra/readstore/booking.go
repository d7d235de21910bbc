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

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingViewSQL = `
SELECT b.id, b.resource_id, r.name, b.requester_id, b.reviewer_id,
       b.start_time, b.end_time, b.purpose, b.status, b.reject_reason,
       b.created_at, b.updated_at
FROM bookings b
JOIN resources r ON r.id = b.resource_id
WHERE b.id = $1`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view         queries.BookingView
		reviewerID   pgtype.UUID
		rejectReason pgtype.Text
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, findBookingViewSQL, id).Scan(
		&view.ID, &view.ResourceID, &view.ResourceName, &view.RequesterID, &reviewerID,
		&view.StartTime, &view.EndTime, &view.Purpose, &view.Status, &rejectReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}

	view.ReviewerID = pgconv.UUIDPtrFromPgtype(reviewerID)
	view.RejectReason = pgconv.StringPtrFromPgtype(rejectReason)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

// FindPage applies ANDed filters; the organization filter resolves through
// resource ownership.
func (s *BookingReadStore) FindPage(ctx context.Context, filter queries.BookingFilter, limit, offset int32) ([]*queries.BookingListItem, int64, error) {
	where, args := buildBookingWhere(filter)

	countSQL := `SELECT count(*) FROM bookings b JOIN resources r ON r.id = b.resource_id` + where
	var total int64
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	pageSQL := fmt.Sprintf(`
SELECT b.id, b.resource_id, r.name, b.requester_id, b.start_time, b.end_time, b.status, b.created_at
FROM bookings b
JOIN resources r ON r.id = b.resource_id
%s
ORDER BY b.created_at DESC, b.id DESC
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := s.db.Query(ctx, pageSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to query bookings page", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item      queries.BookingListItem
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.ResourceID, &item.ResourceName, &item.RequesterID,
			&item.StartTime, &item.EndTime, &item.Status, &createdAt,
		); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read bookings page", err)
	}

	return items, total, nil
}

func buildBookingWhere(filter queries.BookingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.RequesterID != nil {
		add("b.requester_id = $%d", *filter.RequesterID)
	}
	if filter.ResourceID != nil {
		add("b.resource_id = $%d", *filter.ResourceID)
	}
	if filter.Status != nil {
		add("b.status = $%d", *filter.Status)
	}
	if filter.OrganizationID != nil {
		add("r.organization_id = $%d", *filter.OrganizationID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(conds, " AND "), args
}
