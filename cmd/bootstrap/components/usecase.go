package components

import (
	"templatehub/internal/domain/license"
	"templatehub/internal/pkg/clock"
	"templatehub/internal/pkg/config"
	"templatehub/internal/usecase"
	"templatehub/internal/usecase/commands"
	"templatehub/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	license.NewGenerator,
	func(cfg config.Config) config.FulfillmentConfig { return cfg.Fulfillment },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewFulfillmentCommands,
		commands.NewOverrideCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCustomerQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
