package queries

import (
	"context"

	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, err
	}
	return view, nil
}
