package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"commerce-booking/internal/infra/db"
	"commerce-booking/internal/infra/memstore"
	"commerce-booking/internal/infra/metrics"
	"commerce-booking/internal/infra/mongodb"
	"commerce-booking/internal/infra/uow"
	"commerce-booking/internal/pkg/config"
	"commerce-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

const connectTimeout = 15 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the backend selected by STORE_BACKEND and guards it with
// a circuit breaker.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger, collectors *metrics.Collectors) (shared.UnitOfWork, error) {
	retry := shared.NewRetryPolicy(cfg.Store.TxMaxAttempts, cfg.Store.TxBaseDelay)
	retry.OnRetry = collectors.ObserveRetry

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var (
		next    shared.UnitOfWork
		cleanup func()
	)
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, closePool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		next, cleanup = uow.NewPostgresUoW(pool, retry, logger), closePool
	case config.BackendMongo:
		client, database, disconnect, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		next, cleanup = uow.NewMongoUoW(client, database, retry, logger), disconnect
	case config.BackendMemory:
		logger.Warn("using the in-memory store; data is lost on restart")
		next = uow.NewMemoryUoW(memstore.New(), retry)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cleanup != nil {
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
	}

	logger.Info("store ready", "backend", cfg.Store.Backend)
	return uow.NewGuardedUoW(next, uow.BreakerSettings{
		Name:          "store-" + cfg.Store.Backend,
		MaxRequests:   cfg.Store.BreakerMaxRequests,
		Interval:      cfg.Store.BreakerInterval,
		Timeout:       cfg.Store.BreakerTimeout,
		MinRequests:   cfg.Store.BreakerMinRequests,
		FailureRatio:  cfg.Store.BreakerFailureRatio,
		OnStateChange: collectors.SetBreakerState,
	}), nil
}
