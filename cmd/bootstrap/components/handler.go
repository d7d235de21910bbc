package components

import (
	"lab-scheduler/internal/handler"
	"lab-scheduler/internal/handler/api"
	"lab-scheduler/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewResourceHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
