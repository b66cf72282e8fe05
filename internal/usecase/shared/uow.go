package shared

import (
	"context"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/domain/event"
	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/domain/production"
)

type UnitOfWork interface {
	// Within: multi-document transaction with bounded retry on optimistic conflicts
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Run: no transaction; each repository call is a single atomic store operation
	Run(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Inventory() InventoryRepository
	ProductionOrders() ProductionOrderRepository
	Events() EventRepository
	Profiles(kind directory.Kind) ProfileRepository
}

type InventoryRepository interface {
	// Get fails with errs.ErrNotFound for an unknown product.
	Get(ctx context.Context, productID string) (*inventory.Record, error)
	// Update writes stock and updatedAt only if the stored version still equals rec.Version().
	// A lost race is reported as an error marked ErrRetryable.
	Update(ctx context.Context, rec *inventory.Record) error
}

type ProductionOrderRepository interface {
	Create(ctx context.Context, order *production.Order) (string, error)
	Get(ctx context.Context, id string) (*production.Order, error)
}

type EventRepository interface {
	Get(ctx context.Context, eventID string) (*event.Event, error)
	// AddParticipant inserts p keyed by user id unless that user is already present.
	AddParticipant(ctx context.Context, eventID string, p event.Participant) (added bool, err error)
	RemoveParticipant(ctx context.Context, eventID, userID string) (removed bool, err error)
	// HasParticipant is false, not an error, for a missing event.
	HasParticipant(ctx context.Context, eventID, userID string) (bool, error)
}

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*directory.Profile, error)
}
