package queries

//go:generate mockgen -source=inventory.go -destination=../../../tests/mock/queries/inventory.go -package=queriesmock

import (
	"context"

	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/shared"
)

type InventoryQueries interface {
	Get(ctx context.Context, productID string) (*InventoryView, error)
}

type inventoryQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewInventoryQueries(uow shared.UnitOfWork) InventoryQueries {
	return &inventoryQueriesImpl{uow: uow}
}

func (q *inventoryQueriesImpl) Get(ctx context.Context, productID string) (*InventoryView, error) {
	var view *InventoryView
	err := q.uow.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, err := tx.Inventory().Get(ctx, productID)
		if err != nil {
			return err
		}
		view = &InventoryView{
			ProductID: rec.ProductID(),
			Stock:     rec.Stock(),
			UpdatedAt: rec.UpdatedAt(),
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrapf(err, "get inventory %s", productID)
	}
	return view, nil
}
