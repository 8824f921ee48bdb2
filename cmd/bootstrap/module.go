package bootstrap

import (
	"templatehub/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.GatewayModule,
	components.UseCaseModule,
	components.HandlerModule,
)
