package queries

import (
	"context"

	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrResourceNotFound = errs.New("resource not found")

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	FindPage(ctx context.Context, filter ResourceFilter, limit, offset int32) ([]*ResourceView, int64, error)
}

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, filter ResourceFilter, limit, offset int32) (*Page[*ResourceView], error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
}

func NewResourceQueries(store ResourceReadStore) ResourceQueries {
	return &resourceQueriesImpl{store: store}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrResourceNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *resourceQueriesImpl) List(ctx context.Context, filter ResourceFilter, limit, offset int32) (*Page[*ResourceView], error) {
	limit = ClampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	items, total, err := q.store.FindPage(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Page[*ResourceView]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
