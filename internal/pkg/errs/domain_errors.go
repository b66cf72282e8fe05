package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase and handler layers
var (
	// Lookup errors
	ErrNotFound = errors.New("not found")

	// Inventory errors
	ErrInsufficientStock = errors.New("insufficient stock")

	// Store errors
	ErrTransactionConflict = errors.New("transaction conflict")
	ErrStoreUnavailable    = errors.New("store unavailable")

	// Validation errors
	ErrValidation = errors.New("validation failed")

	// Idempotency errors
	ErrIdempotencyInProgress = errors.New("idempotency in progress")
)

var kinds = []error{
	ErrNotFound,
	ErrInsufficientStock,
	ErrTransactionConflict,
	ErrStoreUnavailable,
	ErrValidation,
	ErrIdempotencyInProgress,
}

// KindName is the label used in logs and metrics for an error's kind.
func KindName(err error) string {
	switch Kind(err) {
	case ErrNotFound:
		return "not_found"
	case ErrInsufficientStock:
		return "insufficient_stock"
	case ErrTransactionConflict:
		return "transaction_conflict"
	case ErrStoreUnavailable:
		return "store_unavailable"
	case ErrValidation:
		return "validation"
	case ErrIdempotencyInProgress:
		return "idempotency_in_progress"
	default:
		return "internal"
	}
}
