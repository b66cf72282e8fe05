package inventory

import (
	"errors"
	"fmt"

	"commerce-booking/internal/pkg/errs"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrEmptyProductID  = errors.New("product id cannot be empty")
	ErrNegativeStock   = errors.New("stock cannot be negative")
)

// InsufficientStockError matches errs.ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == errs.ErrInsufficientStock
}
