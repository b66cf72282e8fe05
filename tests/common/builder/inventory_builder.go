//go:build unit || e2e

package builder

import (
	"time"

	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/usecase/queries"
)

type InventoryBuilder struct {
	ProductID string
	Stock     int
	UpdatedAt time.Time
}

func NewInventoryBuilder() *InventoryBuilder {
	return &InventoryBuilder{
		ProductID: "p1",
		Stock:     10,
		UpdatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *InventoryBuilder) With(mutate func(*InventoryBuilder)) *InventoryBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *InventoryBuilder) BuildDomain() (*inventory.Record, error) {
	return inventory.NewRecord(b.ProductID, b.Stock, b.UpdatedAt)
}

func (b *InventoryBuilder) BuildView() *queries.InventoryView {
	return &queries.InventoryView{
		ProductID: b.ProductID,
		Stock:     b.Stock,
		UpdatedAt: b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *InventoryBuilder) WithProductID(productID string) *InventoryBuilder {
	b.ProductID = productID
	return b
}

func (b *InventoryBuilder) WithStock(stock int) *InventoryBuilder {
	b.Stock = stock
	return b
}

func (b *InventoryBuilder) WithUpdatedAt(t time.Time) *InventoryBuilder {
	b.UpdatedAt = t
	return b
}
