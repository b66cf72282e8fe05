package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"commerce-booking/internal/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and verifies the connection. Transactions need a replica set.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, func(), error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI)

	client, err := mongo.Connect(timeoutCtx, clientOptions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	cleanup := func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			slog.Warn("failed to disconnect from MongoDB", "error", err.Error())
			return
		}
		slog.Info("disconnected from MongoDB")
	}

	slog.Info("connected to MongoDB", "database", cfg.Database)
	return client, client.Database(cfg.Database), cleanup, nil
}
