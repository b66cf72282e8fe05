package uow

import (
	"context"
	"errors"
	"log/slog"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/infra"
	"commerce-booking/internal/infra/repository"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/pkg/pgconv"
	"commerce-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	retry  shared.RetryPolicy
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, retry shared.RetryPolicy, logger *slog.Logger) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		retry:  retry,
		logger: logger,
	}
}

// ReadCommitted is enough: the inventory update compares versions itself.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.retry.Do(ctx, "postgres transaction", func(ctx context.Context, attempt int) error {
		return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
	})
}

func (u *PostgresUoW) Run(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &pgTx{dbtx: u.pool, logger: u.logger})
}

// One attempt. Rollback is explicit rather than deferred so retries do not pile up defers.
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return classifyTxErr(u.logger, errs.Mark(err, errTransactionBegin))
	}

	err = fn(ctx, &pgTx{dbtx: pgxTx, logger: u.logger})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		if pgconv.IsCommitOutcomeUnknown(err) {
			err = errs.Mark(
				infra.WrapRepoErr(u.logger, infra.KindUnavailable, "commit result unknown", errs.Mark(err, errTransactionCommit)),
				shared.ErrCommitOutcomeUnknown)
		} else {
			err = classifyTxErr(u.logger, errs.Mark(err, errTransactionCommit))
		}
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "rollback failed", "error", rollbackErr.Error())
		}
	}
	return err
}

func classifyTxErr(logger *slog.Logger, err error) error {
	switch {
	case pgconv.IsRetryable(err):
		return infra.WrapRepoErr(logger, infra.KindConflict, "transaction aborted", err)
	case pgconv.IsConnectionError(err):
		return infra.WrapRepoErr(logger, infra.KindUnavailable, "database unreachable", err)
	default:
		return err
	}
}

type pgTx struct {
	dbtx   repository.DBTX
	logger *slog.Logger

	// Lazy-initialized repositories
	inventoryRepo shared.InventoryRepository
	orderRepo     shared.ProductionOrderRepository
	eventRepo     shared.EventRepository
}

func (t *pgTx) Inventory() shared.InventoryRepository {
	if t.inventoryRepo == nil {
		t.inventoryRepo = repository.NewInventoryRepository(t.dbtx, t.logger)
	}
	return t.inventoryRepo
}

func (t *pgTx) ProductionOrders() shared.ProductionOrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewProductionOrderRepository(t.dbtx, t.logger)
	}
	return t.orderRepo
}

func (t *pgTx) Events() shared.EventRepository {
	if t.eventRepo == nil {
		t.eventRepo = repository.NewEventRepository(t.dbtx, t.logger)
	}
	return t.eventRepo
}

func (t *pgTx) Profiles(kind directory.Kind) shared.ProfileRepository {
	return repository.NewProfileRepository(t.dbtx, kind, t.logger)
}
