package queries

//go:generate mockgen -source=production.go -destination=../../../tests/mock/queries/production.go -package=queriesmock

import (
	"context"

	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/shared"
)

type ProductionQueries interface {
	GetByID(ctx context.Context, orderID string) (*ProductionOrderView, error)
}

type productionQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewProductionQueries(uow shared.UnitOfWork) ProductionQueries {
	return &productionQueriesImpl{uow: uow}
}

func (q *productionQueriesImpl) GetByID(ctx context.Context, orderID string) (*ProductionOrderView, error) {
	var view *ProductionOrderView
	err := q.uow.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		order, err := tx.ProductionOrders().Get(ctx, orderID)
		if err != nil {
			return err
		}
		view = &ProductionOrderView{
			ID:            order.ID(),
			ProductID:     order.ProductID(),
			Quantity:      order.Quantity(),
			ScheduledDate: order.ScheduledDate(),
			CreatedBy:     order.CreatedBy(),
			CreatedAt:     order.CreatedAt(),
			Status:        order.Status().String(),
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrapf(err, "get production order %s", orderID)
	}
	return view, nil
}
