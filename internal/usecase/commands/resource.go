package commands

import (
	"context"

	"lab-scheduler/internal/domain/resource"
	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/infra/db"
	"lab-scheduler/internal/pkg/clock"
	"lab-scheduler/internal/pkg/errs"
	"lab-scheduler/internal/usecase/queries"
	"lab-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateResourceParams struct {
	Name        string
	Description string
	Location    string
	PhotoURL    *string
	ManagerID   uuid.UUID
}

type ResourceCommands interface {
	Create(ctx context.Context, actor Actor, p CreateResourceParams) (*queries.ResourceView, error)
	// UpdateStatus applies the optimistic-lock write; on a stale version it
	// re-reads and retries exactly once before surfacing ErrVersionConflict.
	UpdateStatus(ctx context.Context, actor Actor, resourceID uuid.UUID, status resource.Status, expectedVersion int64) (*queries.ResourceView, error)
	Delete(ctx context.Context, actor Actor, resourceID uuid.UUID) error
}

type resourceCommandsImpl struct {
	uow             shared.UnitOfWork
	resourceRepo    shared.ResourceRepository
	bookingRepo     shared.BookingRepository
	resourceQueries queries.ResourceQueries
	clock           clock.Clock
}

func NewResourceCommands(
	uow shared.UnitOfWork,
	resourceRepo shared.ResourceRepository,
	bookingRepo shared.BookingRepository,
	resourceQueries queries.ResourceQueries,
	clk clock.Clock,
) ResourceCommands {
	return &resourceCommandsImpl{
		uow:             uow,
		resourceRepo:    resourceRepo,
		bookingRepo:     bookingRepo,
		resourceQueries: resourceQueries,
		clock:           clk,
	}
}

func (c *resourceCommandsImpl) Create(ctx context.Context, actor Actor, p CreateResourceParams) (*queries.ResourceView, error) {
	if !actor.Role.CanManageCatalog() {
		return nil, ErrForbidden
	}
	if actor.OrganizationID == nil {
		return nil, errs.Mark(errs.New("actor has no organization"), ErrValidation)
	}

	managerID := p.ManagerID
	if managerID == uuid.Nil {
		managerID = actor.ID
	}

	res, err := resource.NewResource(p.Name, p.Description, p.Location, p.PhotoURL, *actor.OrganizationID, managerID)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var resourceID uuid.UUID
	err = c.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		resourceID, err = c.resourceRepo.Create(ctx, dbtx, res)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.resourceQueries.GetByID(ctx, resourceID)
}

func (c *resourceCommandsImpl) UpdateStatus(ctx context.Context, actor Actor, resourceID uuid.UUID, status resource.Status, expectedVersion int64) (*queries.ResourceView, error) {
	if !status.IsValid() {
		return nil, errs.Mark(errs.Newf("unknown status %q", status), ErrValidation)
	}
	if !actor.Role.CanReview() {
		return nil, ErrForbidden
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := c.resourceRepo.FindByID(ctx, tx, resourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrResourceNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Taking an instrument down mid-booking would strand its user.
		if status == resource.StatusMaintenance {
			busy, err := c.bookingRepo.HasApprovedInProgress(ctx, tx, res.ID(), c.clock.Now())
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if busy {
				return ErrResourceBusy
			}
		}

		return c.updateStatusWithRetry(ctx, tx, res, status, expectedVersion)
	})
	if err != nil {
		return nil, err
	}

	return c.resourceQueries.GetByID(ctx, resourceID)
}

// Lost optimistic races are recoverable: re-read once, reapply, then give up
// with ErrVersionConflict so the caller refreshes. One retry, never more, to
// avoid livelock.
func (c *resourceCommandsImpl) updateStatusWithRetry(ctx context.Context, tx db.DBTX, res *resource.Resource, status resource.Status, expectedVersion int64) error {
	err := c.resourceRepo.UpdateStatus(ctx, tx, res.ID(), status, expectedVersion)
	if err == nil {
		return nil
	}
	if !infra.IsKind(err, infra.KindVersionMismatch) {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	fresh, err := c.resourceRepo.FindByID(ctx, tx, res.ID())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	err = c.resourceRepo.UpdateStatus(ctx, tx, res.ID(), status, fresh.Version())
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindVersionMismatch) {
		return errs.Mark(err, ErrVersionConflict)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func (c *resourceCommandsImpl) Delete(ctx context.Context, actor Actor, resourceID uuid.UUID) error {
	if !actor.Role.CanManageCatalog() {
		return ErrForbidden
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		busy, err := c.bookingRepo.HasApprovedInProgress(ctx, tx, resourceID, c.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if busy {
			return ErrResourceBusy
		}

		if err := c.resourceRepo.SoftDelete(ctx, tx, resourceID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrResourceNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
