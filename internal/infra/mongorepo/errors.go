package mongorepo

import (
	"errors"
	"log/slog"

	"commerce-booking/internal/infra"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	codeWriteConflict = 112

	labelTransientTransaction = "TransientTransactionError"
	labelUnknownCommitResult  = "UnknownTransactionCommitResult"
)

// Classify maps a driver error onto a repository error kind.
func Classify(logger *slog.Logger, msg string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return infra.WrapRepoErr(logger, infra.KindNotFound, msg, err)
	case mongo.IsDuplicateKeyError(err):
		return infra.WrapRepoErr(logger, infra.KindDuplicateKey, msg, err)
	case IsRetryable(err):
		return infra.WrapRepoErr(logger, infra.KindConflict, msg, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, mongo.ErrClientDisconnected):
		return infra.WrapRepoErr(logger, infra.KindUnavailable, msg, err)
	default:
		return infra.WrapRepoErr(logger, infra.KindDBFailure, msg, err)
	}
}

// IsRetryable reports errors after which the whole transaction can run again.
func IsRetryable(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel(labelTransientTransaction) ||
			se.HasErrorCode(codeWriteConflict)
	}
	return false
}

// IsUnknownCommitResult reports a commit that may have been applied. Only the
// commit itself may be retried.
func IsUnknownCommitResult(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel(labelUnknownCommitResult)
	}
	return false
}
