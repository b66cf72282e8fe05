//go:build unit

package uow_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/domain/production"
	"commerce-booking/internal/infra/memstore"
	"commerce-booking/internal/infra/uow"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MemoryUoWTestSuite struct {
	suite.Suite
	store *memstore.Store
	uow   *uow.MemoryUoW
	now   time.Time
}

func (s *MemoryUoWTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.store = memstore.New()
	s.store.PutInventory("p1", 10, s.now)
	s.uow = uow.NewMemoryUoW(s.store, shared.NewRetryPolicy(3, time.Millisecond))
}

func TestMemoryUoWTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryUoWTestSuite))
}

func (s *MemoryUoWTestSuite) reserve(ctx context.Context, tx shared.Tx, n int) error {
	rec, err := tx.Inventory().Get(ctx, "p1")
	if err != nil {
		return err
	}
	q, _ := inventory.NewQuantity(n)
	if err := rec.Reserve(q, s.now); err != nil {
		return err
	}
	if err := tx.Inventory().Update(ctx, rec); err != nil {
		return err
	}
	q2, _ := inventory.NewQuantity(n)
	order, err := production.NewOrder("p1", q2, s.now, "op", s.now)
	if err != nil {
		return err
	}
	_, err = tx.ProductionOrders().Create(ctx, order)
	return err
}

func (s *MemoryUoWTestSuite) TestCommitAppliesAllWrites() {
	ctx := context.Background()
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return s.reserve(ctx, tx, 4)
	})
	s.Require().NoError(err)

	stock, _ := s.store.Stock("p1")
	s.Equal(6, stock)
	s.Len(s.store.Orders(), 1)
}

func (s *MemoryUoWTestSuite) TestFailureDiscardsStagedWrites() {
	ctx := context.Background()
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := s.reserve(ctx, tx, 4); err != nil {
			return err
		}
		return errs.New("boom")
	})
	s.Require().Error(err)

	stock, _ := s.store.Stock("p1")
	s.Equal(10, stock)
	s.Empty(s.store.Orders())
}

func (s *MemoryUoWTestSuite) TestConflictIsRetried() {
	ctx := context.Background()
	var commits int32
	s.store.SetBeforeCommit(func() {
		if atomic.AddInt32(&commits, 1) == 1 {
			s.store.PutInventory("p1", 8, s.now)
		}
	})

	attempts := 0
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		attempts++
		return s.reserve(ctx, tx, 5)
	})
	s.Require().NoError(err)

	s.Equal(2, attempts)
	stock, _ := s.store.Stock("p1")
	s.Equal(3, stock)
	s.Len(s.store.Orders(), 1)
}

func (s *MemoryUoWTestSuite) TestRetryExhaustion() {
	ctx := context.Background()
	s.store.SetBeforeCommit(func() {
		s.store.PutInventory("p1", 10, s.now)
	})

	attempts := 0
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		attempts++
		return s.reserve(ctx, tx, 1)
	})
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrTransactionConflict))
	s.Equal(3, attempts)
	s.Empty(s.store.Orders())
}

func (s *MemoryUoWTestSuite) TestDomainErrorsAreNotRetried() {
	ctx := context.Background()
	attempts := 0
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		attempts++
		return s.reserve(ctx, tx, 11)
	})
	s.True(errs.Is(err, errs.ErrInsufficientStock))
	s.Equal(1, attempts)
}

func (s *MemoryUoWTestSuite) TestUnavailableStore() {
	ctx := context.Background()
	s.store.SetFailure(errs.New("connection refused"))

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error { return nil })
	s.True(errs.Is(err, errs.ErrStoreUnavailable))

	err = s.uow.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Events().HasParticipant(ctx, "e1", "u1")
		return err
	})
	s.True(errs.Is(err, errs.ErrStoreUnavailable))
}

func TestRunUpdateIsCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := memstore.New()
	store.PutInventory("p1", 10, now)
	u := uow.NewMemoryUoW(store, shared.NewRetryPolicy(1, time.Millisecond))

	err := u.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		stale, err := tx.Inventory().Get(ctx, "p1")
		require.NoError(t, err)

		store.PutInventory("p1", 9, now)

		q, _ := inventory.NewQuantity(1)
		require.NoError(t, stale.Reserve(q, now))
		return tx.Inventory().Update(ctx, stale)
	})
	assert.True(t, errs.Is(err, shared.ErrRetryable))

	stock, _ := store.Stock("p1")
	assert.Equal(t, 9, stock)
}
