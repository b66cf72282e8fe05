package uow

import (
	"context"
	"log/slog"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/infra"
	"commerce-booking/internal/infra/mongorepo"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const maxCommitAttempts = 3

type MongoUoW struct {
	client *mongo.Client
	db     *mongo.Database
	retry  shared.RetryPolicy
	logger *slog.Logger
}

func NewMongoUoW(client *mongo.Client, db *mongo.Database, retry shared.RetryPolicy, logger *slog.Logger) *MongoUoW {
	return &MongoUoW{
		client: client,
		db:     db,
		retry:  retry,
		logger: logger,
	}
}

// Each attempt gets its own session. Repositories join the transaction through the session context.
func (u *MongoUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.retry.Do(ctx, "mongo transaction", func(ctx context.Context, attempt int) error {
		return u.runInTx(ctx, fn)
	})
}

func (u *MongoUoW) Run(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &mongoTx{db: u.db, logger: u.logger})
}

func (u *MongoUoW) runInTx(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	sess, err := u.client.StartSession()
	if err != nil {
		return mongorepo.Classify(u.logger, "failed to start session", err)
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())
	if err := sess.StartTransaction(txOpts); err != nil {
		return mongorepo.Classify(u.logger, "failed to start transaction", err)
	}

	sessCtx := mongo.NewSessionContext(ctx, sess)
	if err := fn(sessCtx, &mongoTx{db: u.db, logger: u.logger}); err != nil {
		if abortErr := sess.AbortTransaction(context.WithoutCancel(ctx)); abortErr != nil {
			slog.WarnContext(ctx, "abort transaction failed", "error", abortErr.Error())
		}
		return err
	}

	return u.commit(sessCtx, sess)
}

// commit retries only CommitTransaction while the server cannot say whether
// the transaction was applied. Rerunning the body could apply it twice.
func (u *MongoUoW) commit(ctx context.Context, sess mongo.Session) error {
	for attempt := 1; ; attempt++ {
		err := sess.CommitTransaction(ctx)
		if err == nil {
			return nil
		}
		if !mongorepo.IsUnknownCommitResult(err) {
			return mongorepo.Classify(u.logger, "failed to commit transaction", err)
		}
		if attempt >= maxCommitAttempts || ctx.Err() != nil {
			return errs.Mark(
				infra.WrapRepoErr(u.logger, infra.KindUnavailable, "transaction commit result unknown", err),
				shared.ErrCommitOutcomeUnknown)
		}
		slog.WarnContext(ctx, "retrying commit with unknown result", "attempt", attempt, "error", err.Error())
	}
}

type mongoTx struct {
	db     *mongo.Database
	logger *slog.Logger

	// Lazy-initialized repositories
	inventoryRepo shared.InventoryRepository
	orderRepo     shared.ProductionOrderRepository
	eventRepo     shared.EventRepository
}

func (t *mongoTx) Inventory() shared.InventoryRepository {
	if t.inventoryRepo == nil {
		t.inventoryRepo = mongorepo.NewInventoryRepository(t.db, t.logger)
	}
	return t.inventoryRepo
}

func (t *mongoTx) ProductionOrders() shared.ProductionOrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = mongorepo.NewProductionOrderRepository(t.db, t.logger)
	}
	return t.orderRepo
}

func (t *mongoTx) Events() shared.EventRepository {
	if t.eventRepo == nil {
		t.eventRepo = mongorepo.NewEventRepository(t.db, t.logger)
	}
	return t.eventRepo
}

func (t *mongoTx) Profiles(kind directory.Kind) shared.ProfileRepository {
	return mongorepo.NewProfileRepository(t.db, kind, t.logger)
}
