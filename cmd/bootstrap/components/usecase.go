package components

import (
	"lab-scheduler/internal/domain/booking"
	"lab-scheduler/internal/pkg/clock"
	"lab-scheduler/internal/usecase"
	"lab-scheduler/internal/usecase/commands"
	"lab-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clk clock.Clock) *booking.Services {
		return &booking.Services{
			Clock: clk,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewSchedulerCommands,
		commands.NewResourceCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewResourceQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
