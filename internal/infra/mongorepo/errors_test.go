//go:build unit

package mongorepo_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"commerce-booking/internal/infra"
	"commerce-booking/internal/infra/mongorepo"
	"commerce-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassify(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := []struct {
		name string
		err  error
		kind infra.RepositoryErrorKind
	}{
		{"no documents", mongo.ErrNoDocuments, infra.KindNotFound},
		{"duplicate key", mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"}, infra.KindDuplicateKey},
		{"write conflict", mongo.CommandError{Code: 112, Name: "WriteConflict"}, infra.KindConflict},
		{"transient label", mongo.CommandError{Code: 251, Labels: []string{"TransientTransactionError"}}, infra.KindConflict},
		{"network", mongo.CommandError{Labels: []string{"NetworkError"}}, infra.KindUnavailable},
		{"timeout", context.DeadlineExceeded, infra.KindUnavailable},
		{"disconnected", mongo.ErrClientDisconnected, infra.KindUnavailable},
		{"other", errs.New("boom"), infra.KindDBFailure},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := mongorepo.Classify(logger, "op", c.err)
			assert.True(t, infra.IsKind(err, c.kind), "got %v", err)
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, mongorepo.IsRetryable(mongo.CommandError{Labels: []string{"TransientTransactionError"}}))
	assert.False(t, mongorepo.IsRetryable(mongo.CommandError{Labels: []string{"UnknownTransactionCommitResult"}}))
	assert.False(t, mongorepo.IsRetryable(mongo.CommandError{Code: 11000}))
	assert.False(t, mongorepo.IsRetryable(errs.New("plain")))
}

func TestIsUnknownCommitResult(t *testing.T) {
	assert.True(t, mongorepo.IsUnknownCommitResult(mongo.CommandError{Labels: []string{"UnknownTransactionCommitResult", "NetworkError"}}))
	assert.False(t, mongorepo.IsUnknownCommitResult(mongo.CommandError{Labels: []string{"TransientTransactionError"}}))
	assert.False(t, mongorepo.IsUnknownCommitResult(errs.New("plain")))
}
