package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"

	"commerce-booking/internal/pkg/errs"
)

var (
	// ErrRetryable marks store errors caused by a concurrent writer. Only these are retried.
	ErrRetryable = errs.New("retryable store conflict")
	// ErrDuplicateKey marks an insert whose key is already stored.
	ErrDuplicateKey = errs.New("duplicate key")
	// ErrCommitOutcomeUnknown marks a commit whose reply was lost. The writes may or may not be durable.
	ErrCommitOutcomeUnknown = errs.New("commit outcome unknown")
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 50 * time.Millisecond
)

type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// OnRetry, when set, is called before each wait.
	OnRetry func(op string, attempt int, err error)
}

func NewRetryPolicy(maxAttempts int, baseDelay time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	return RetryPolicy{MaxAttempts: maxAttempts, BaseDelay: baseDelay}
}

// Do runs fn until it succeeds, fails with a non-retryable error, or the attempts
// are used up. Exhaustion is reported as errs.ErrTransactionConflict.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func(ctx context.Context, attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(ctx, attempt)
		if err == nil {
			return nil
		}
		if !errs.Is(err, ErrRetryable) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		waitTime := CalculateBackoff(attempt-1, p.BaseDelay)
		slog.WarnContext(ctx, "retrying transaction due to retryable error",
			"op", op,
			"attempt", attempt,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())
		if p.OnRetry != nil {
			p.OnRetry(op, attempt, err)
		}

		select {
		case <-ctx.Done():
			return errs.Wrap(ctx.Err(), op)
		case <-time.After(waitTime):
		}
	}

	slog.ErrorContext(ctx, "transaction failed after max retries",
		"op", op,
		"attempts", maxAttempts,
		"error", err.Error())
	return errs.Mark(errs.Wrapf(err, "%s failed after %d attempts", op, maxAttempts), errs.ErrTransactionConflict)
}

// CalculateBackoff doubles base per attempt and adds up to 20% jitter.
func CalculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to a positive value above
	return int64(uval) % n
}
