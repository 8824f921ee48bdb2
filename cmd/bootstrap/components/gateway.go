package components

import (
	"templatehub/internal/infra/gateway"
	"templatehub/internal/pkg/config"
	"templatehub/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		func(cfg config.Config) config.EmailConfig { return cfg.Email },
		func(cfg config.Config) config.GitHubConfig { return cfg.GitHub },
		fx.Annotate(
			gateway.NewEmailNotifier,
			fx.As(new(commands.DeliveryNotifier)),
		),
		fx.Annotate(
			gateway.NewGithubGrantor,
			fx.As(new(commands.AccessGrantor)),
		),
	),
)
