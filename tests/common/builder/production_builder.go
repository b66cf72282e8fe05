//go:build unit || e2e

package builder

import (
	"time"

	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/domain/production"
	reqdto "commerce-booking/internal/handler/dto/request"
	"commerce-booking/internal/usecase/commands"
	"commerce-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductionOrderBuilder struct {
	ProductID      string
	Quantity       int
	ScheduledDate  time.Time
	CreatedBy      string
	CreatedAt      time.Time
	IdempotencyKey string
}

func NewProductionOrderBuilder() *ProductionOrderBuilder {
	return &ProductionOrderBuilder{
		ProductID:     "p1",
		Quantity:      7,
		ScheduledDate: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		CreatedBy:     "operator-1",
		CreatedAt:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ProductionOrderBuilder) With(mutate func(*ProductionOrderBuilder)) *ProductionOrderBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ProductionOrderBuilder) BuildDomain() (*production.Order, error) {
	q, err := inventory.NewQuantity(b.Quantity)
	if err != nil {
		return nil, err
	}
	return production.NewOrder(b.ProductID, q, b.ScheduledDate, b.CreatedBy, b.CreatedAt)
}

func (b *ProductionOrderBuilder) BuildParams() commands.CreateProductionOrderParams {
	return commands.CreateProductionOrderParams{
		ProductID:      b.ProductID,
		Quantity:       b.Quantity,
		ScheduledDate:  b.ScheduledDate,
		CreatedBy:      b.CreatedBy,
		IdempotencyKey: b.IdempotencyKey,
	}
}

func (b *ProductionOrderBuilder) BuildRequestDTO() reqdto.CreateProductionOrderRequest {
	return reqdto.CreateProductionOrderRequest{
		ProductID:     b.ProductID,
		Quantity:      b.Quantity,
		ScheduledDate: b.ScheduledDate.Format(reqdto.DateLayout),
	}
}

func (b *ProductionOrderBuilder) BuildView() *queries.ProductionOrderView {
	return &queries.ProductionOrderView{
		ID:            uuid.NewString(),
		ProductID:     b.ProductID,
		Quantity:      b.Quantity,
		ScheduledDate: b.ScheduledDate,
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
		Status:        production.StatusScheduled.String(),
	}
}

// Fluent builder methods
func (b *ProductionOrderBuilder) WithProductID(productID string) *ProductionOrderBuilder {
	b.ProductID = productID
	return b
}

func (b *ProductionOrderBuilder) WithQuantity(quantity int) *ProductionOrderBuilder {
	b.Quantity = quantity
	return b
}

func (b *ProductionOrderBuilder) WithScheduledDate(t time.Time) *ProductionOrderBuilder {
	b.ScheduledDate = t
	return b
}

func (b *ProductionOrderBuilder) WithCreatedBy(createdBy string) *ProductionOrderBuilder {
	b.CreatedBy = createdBy
	return b
}

func (b *ProductionOrderBuilder) WithIdempotencyKey(key string) *ProductionOrderBuilder {
	b.IdempotencyKey = key
	return b
}
