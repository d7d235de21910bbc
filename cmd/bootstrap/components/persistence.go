package components

import (
	"lab-scheduler/internal/infra/db"
	"lab-scheduler/internal/infra/readstore"
	"lab-scheduler/internal/infra/repository"
	"lab-scheduler/internal/infra/uow"
	"lab-scheduler/internal/usecase/commands"
	"lab-scheduler/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
			fx.As(new(commands.UserReader)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// Constructors already return the shared interfaces.
		uow.NewPostgresUoW,
		repository.NewBookingRepository,
		repository.NewResourceRepository,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
