package components

import (
	"templatehub/internal/handler"
	"templatehub/internal/handler/api"
	"templatehub/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewFulfillmentHandler,
		api.NewCustomerHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
