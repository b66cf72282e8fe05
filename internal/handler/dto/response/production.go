package response

import (
	reqdto "commerce-booking/internal/handler/dto/request"
	"commerce-booking/internal/usecase/queries"
)

type CreateProductionOrderResponse struct {
	ID       string `json:"id"`
	Replayed bool   `json:"replayed,omitempty"`
}

type ProductionOrderResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	ScheduledDate string `json:"scheduledDate"`
	CreatedBy     string `json:"createdBy"`
	CreatedAt     int64  `json:"createdAt"`
	Status        string `json:"status"`
}

func FromProductionOrderView(v *queries.ProductionOrderView) *ProductionOrderResponse {
	return &ProductionOrderResponse{
		ID:            v.ID,
		ProductID:     v.ProductID,
		Quantity:      v.Quantity,
		ScheduledDate: v.ScheduledDate.Format(reqdto.DateLayout),
		CreatedBy:     v.CreatedBy,
		CreatedAt:     v.CreatedAt.Unix(),
		Status:        v.Status,
	}
}

type InventoryResponse struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
	UpdatedAt int64  `json:"updatedAt"`
}

func FromInventoryView(v *queries.InventoryView) *InventoryResponse {
	return &InventoryResponse{
		ProductID: v.ProductID,
		Stock:     v.Stock,
		UpdatedAt: v.UpdatedAt.Unix(),
	}
}
