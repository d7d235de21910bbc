package queries

import (
	"context"

	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindPage(ctx context.Context, filter BookingFilter, limit, offset int32) ([]*BookingListItem, int64, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, limit, offset int32) (*Page[*BookingListItem], error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter, limit, offset int32) (*Page[*BookingListItem], error) {
	limit = ClampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	items, total, err := q.store.FindPage(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Page[*BookingListItem]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
