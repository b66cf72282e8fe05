package uow

import (
	"context"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/infra/memstore"
	"commerce-booking/internal/usecase/shared"
)

type MemoryUoW struct {
	store *memstore.Store
	retry shared.RetryPolicy
}

func NewMemoryUoW(store *memstore.Store, retry shared.RetryPolicy) *MemoryUoW {
	return &MemoryUoW{store: store, retry: retry}
}

func (u *MemoryUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.retry.Do(ctx, "memory transaction", func(ctx context.Context, attempt int) error {
		txn, err := u.store.Begin()
		if err != nil {
			return err
		}

		if err := fn(ctx, &memTx{store: u.store, txn: txn}); err != nil {
			txn.Rollback()
			return err
		}
		return txn.Commit()
	})
}

func (u *MemoryUoW) Run(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &memTx{store: u.store})
}

type memTx struct {
	store *memstore.Store
	txn   *memstore.Txn

	// Lazy-initialized repositories
	inventoryRepo shared.InventoryRepository
	orderRepo     shared.ProductionOrderRepository
	eventRepo     shared.EventRepository
}

func (t *memTx) Inventory() shared.InventoryRepository {
	if t.inventoryRepo == nil {
		t.inventoryRepo = memstore.NewInventoryRepository(t.store, t.txn)
	}
	return t.inventoryRepo
}

func (t *memTx) ProductionOrders() shared.ProductionOrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = memstore.NewProductionOrderRepository(t.store, t.txn)
	}
	return t.orderRepo
}

func (t *memTx) Events() shared.EventRepository {
	if t.eventRepo == nil {
		t.eventRepo = memstore.NewEventRepository(t.store)
	}
	return t.eventRepo
}

func (t *memTx) Profiles(kind directory.Kind) shared.ProfileRepository {
	return memstore.NewProfileRepository(t.store, kind)
}
