package components

import (
	"commerce-booking/internal/infra/metrics"
	"commerce-booking/internal/pkg/clock"
	"commerce-booking/internal/usecase"
	"commerce-booking/internal/usecase/commands"
	"commerce-booking/internal/usecase/queries"

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
	func(c *metrics.Collectors) commands.Metrics {
		return c
	},
	func(q queries.DirectoryQueries) commands.ProfileLookup {
		return q
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewProductionUseCase,
		commands.NewParticipationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewInventoryQueries,
		queries.NewProductionQueries,
		queries.NewParticipationQueries,
		queries.NewDirectoryQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
