package repository

import (
	"context"
	"log/slog"

	"commerce-booking/internal/infra"
	"commerce-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// classify maps a driver error onto a repository error kind.
func classify(logger *slog.Logger, msg string, err error) error {
	switch {
	case pgconv.IsNoRows(err):
		return infra.WrapRepoErr(logger, infra.KindNotFound, msg, err)
	case pgconv.IsRetryable(err), pgconv.Code(err) == pgconv.CodeCheckViolation:
		return infra.WrapRepoErr(logger, infra.KindConflict, msg, err)
	case pgconv.Code(err) == pgconv.CodeUniqueViolation:
		return infra.WrapRepoErr(logger, infra.KindDuplicateKey, msg, err)
	case pgconv.IsConnectionError(err):
		return infra.WrapRepoErr(logger, infra.KindUnavailable, msg, err)
	default:
		return infra.WrapRepoErr(logger, infra.KindDBFailure, msg, err)
	}
}
