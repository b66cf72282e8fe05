package request

import (
	"time"

	"commerce-booking/internal/usecase/commands"
)

const DateLayout = time.DateOnly

type CreateProductionOrderRequest struct {
	ProductID     string `json:"productId" binding:"required,max=128"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	ScheduledDate string `json:"scheduledDate" binding:"required,datetime=2006-01-02"`
}

// ToParams fills in the caller's identity; the creation time is stamped by the service.
func (r *CreateProductionOrderRequest) ToParams(createdBy, idempotencyKey string) (commands.CreateProductionOrderParams, error) {
	scheduled, err := time.ParseInLocation(DateLayout, r.ScheduledDate, time.UTC)
	if err != nil {
		return commands.CreateProductionOrderParams{}, err
	}
	return commands.CreateProductionOrderParams{
		ProductID:      r.ProductID,
		Quantity:       r.Quantity,
		ScheduledDate:  scheduled,
		CreatedBy:      createdBy,
		IdempotencyKey: idempotencyKey,
	}, nil
}
