package inventory

import (
	"strings"
	"time"
)

// Record is the stock counter of one product. Version is the optimistic
// concurrency token the store compares on write; it is never changed here.
type Record struct {
	productID string
	stock     int
	version   int64
	updatedAt time.Time
}

func NewRecord(productID string, stock int, now time.Time) (*Record, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrEmptyProductID
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	return &Record{
		productID: productID,
		stock:     stock,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a record read from the store.
func Reconstruct(productID string, stock int, version int64, updatedAt time.Time) *Record {
	return &Record{
		productID: productID,
		stock:     stock,
		version:   version,
		updatedAt: updatedAt,
	}
}

// Reserve takes quantity out of stock. On failure the record is untouched.
func (r *Record) Reserve(q Quantity, now time.Time) error {
	if q.Value() <= 0 {
		return ErrInvalidQuantity
	}
	if q.Value() > r.stock {
		return &InsufficientStockError{
			ProductID: r.productID,
			Requested: q.Value(),
			Available: r.stock,
		}
	}
	r.stock -= q.Value()
	r.updatedAt = now
	return nil
}

func (r *Record) ProductID() string    { return r.productID }
func (r *Record) Stock() int           { return r.stock }
func (r *Record) Version() int64       { return r.version }
func (r *Record) UpdatedAt() time.Time { return r.updatedAt }
