package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/shared"

	"github.com/sony/gobreaker"
)

type BreakerSettings struct {
	Name         string
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
	// OnStateChange, when set, is called after the breaker logs a transition.
	OnStateChange func(name string, to gobreaker.State)
}

// GuardedUoW trips a circuit breaker on store failures and reports an open
// breaker as errs.ErrStoreUnavailable. Rejections decided by the usecase
// (not found, insufficient stock, validation, conflicts) count as successes.
type GuardedUoW struct {
	next shared.UnitOfWork
	cb   *gobreaker.CircuitBreaker
}

func NewGuardedUoW(next shared.UnitOfWork, st BreakerSettings) *GuardedUoW {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        st.Name,
		MaxRequests: st.MaxRequests, // Max requests allowed in half-open state
		Interval:    st.Interval,    // Window to track failures
		Timeout:     st.Timeout,     // Time to wait before half-open
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < st.MinRequests || counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= st.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				"circuit", name,
				"from", from.String(),
				"to", to.String())
			if st.OnStateChange != nil {
				st.OnStateChange(name, to)
			}
		},
		IsSuccessful: isBreakerSuccess,
	})

	if st.OnStateChange != nil {
		st.OnStateChange(st.Name, gobreaker.StateClosed)
	}

	return &GuardedUoW{next: next, cb: cb}
}

func (g *GuardedUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return g.execute(func() error { return g.next.Within(ctx, fn) })
}

func (g *GuardedUoW) Run(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return g.execute(func() error { return g.next.Run(ctx, fn) })
}

func (g *GuardedUoW) State() gobreaker.State {
	return g.cb.State()
}

func (g *GuardedUoW) execute(f func() error) error {
	_, err := g.cb.Execute(func() (interface{}, error) {
		return nil, f()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errs.Mark(errs.Wrapf(err, "circuit breaker %s", g.cb.Name()), errs.ErrStoreUnavailable)
	}
	return err
}

func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	switch errs.Kind(err) {
	case errs.ErrNotFound, errs.ErrInsufficientStock, errs.ErrValidation,
		errs.ErrTransactionConflict, errs.ErrIdempotencyInProgress:
		return true
	default:
		return false
	}
}
