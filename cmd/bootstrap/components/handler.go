package components

import (
	"commerce-booking/internal/handler"
	"commerce-booking/internal/handler/api"
	"commerce-booking/internal/handler/middleware"
	"commerce-booking/internal/infra/metrics"
	"commerce-booking/internal/pkg/clock"
	"commerce-booking/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewProductionHandler,
		api.NewInventoryHandler,
		api.NewParticipationHandler,
		api.NewDirectoryHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config, clk clock.Clock) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit, clk)
		},
		newHandlers,
		newObservability,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	production *api.ProductionHandler,
	inventory *api.InventoryHandler,
	participation *api.ParticipationHandler,
	directory *api.DirectoryHandler,
) handler.Handlers {
	return handler.Handlers{
		Production:    production,
		Inventory:     inventory,
		Participation: participation,
		Directory:     directory,
	}
}

func newObservability(logger *middleware.Logger, collectors *metrics.Collectors, gatherer prometheus.Gatherer) handler.Observability {
	return handler.Observability{
		Logger:     logger,
		Collectors: collectors,
		Gatherer:   gatherer,
	}
}
