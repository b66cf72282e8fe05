package production

import (
	"strings"
	"time"

	"commerce-booking/internal/domain/inventory"

	"github.com/google/uuid"
)

type Order struct {
	id            string
	productID     string
	quantity      int
	scheduledDate time.Time
	createdBy     string
	createdAt     time.Time
	status        Status
}

func NewOrder(productID string, quantity inventory.Quantity, scheduledDate time.Time, createdBy string, now time.Time) (*Order, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, inventory.ErrEmptyProductID
	}
	if quantity.Value() <= 0 {
		return nil, inventory.ErrInvalidQuantity
	}
	if scheduledDate.IsZero() {
		return nil, ErrMissingScheduledDate
	}
	createdBy = strings.TrimSpace(createdBy)
	if createdBy == "" {
		return nil, ErrEmptyCreator
	}

	return &Order{
		id:            uuid.NewString(),
		productID:     productID,
		quantity:      quantity.Value(),
		scheduledDate: scheduledDate,
		createdBy:     createdBy,
		createdAt:     now,
		status:        StatusScheduled,
	}, nil
}

// Reconstruct rebuilds an order read from the store.
func Reconstruct(id, productID string, quantity int, scheduledDate time.Time, createdBy string, createdAt time.Time, status Status) *Order {
	return &Order{
		id:            id,
		productID:     productID,
		quantity:      quantity,
		scheduledDate: scheduledDate,
		createdBy:     createdBy,
		createdAt:     createdAt,
		status:        status,
	}
}

func (o *Order) ID() string               { return o.id }
func (o *Order) ProductID() string        { return o.productID }
func (o *Order) Quantity() int            { return o.quantity }
func (o *Order) ScheduledDate() time.Time { return o.scheduledDate }
func (o *Order) CreatedBy() string        { return o.createdBy }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) Status() Status           { return o.status }
