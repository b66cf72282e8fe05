package bootstrap

import (
	"context"
	"log/slog"

	"commerce-booking/internal/infra/idempotency"
	"commerce-booking/internal/infra/notify"
	"commerce-booking/internal/pkg/clock"
	"commerce-booking/internal/pkg/config"
	"commerce-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewNotifier,
		NewIdempotencyStore,
	),
)

func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) commands.Notifier {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("no kafka brokers configured; notifications are logged only")
		return notify.NewLogNotifier(logger)
	}

	n := notify.NewKafkaNotifier(notify.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), cfg.Kafka.Topic)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return n.Close()
		},
	})
	return n
}

func NewIdempotencyStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (commands.IdempotencyStore, error) {
	if cfg.Redis.URL == "" {
		logger.Info("no redis configured; idempotency keys are kept in process memory")
		return idempotency.NewMemoryStore(cfg.Redis.IdempotencyTTL, clk), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	client, err := idempotency.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return idempotency.NewRedisStore(client, cfg.Redis.IdempotencyTTL), nil
}
