package memstore

import (
	"context"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/domain/event"
	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/domain/production"
	"commerce-booking/internal/infra"
	"commerce-booking/internal/usecase/shared"
)

// Repositories bound to a nil *Txn write straight to the store.

type InventoryRepository struct {
	store *Store
	txn   *Txn
}

func NewInventoryRepository(store *Store, txn *Txn) shared.InventoryRepository {
	return &InventoryRepository{store: store, txn: txn}
}

func (r *InventoryRepository) Get(ctx context.Context, productID string) (*inventory.Record, error) {
	if r.txn != nil {
		if staged, ok := r.txn.inventory[productID]; ok {
			return inventory.Reconstruct(productID, staged.doc.stock, staged.doc.version, staged.doc.updatedAt), nil
		}
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.unavailable("get inventory"); err != nil {
		return nil, err
	}
	doc, ok := s.inventory[productID]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "inventory not found: "+productID, nil)
	}
	return inventory.Reconstruct(productID, doc.stock, doc.version, doc.updatedAt), nil
}

func (r *InventoryRepository) Update(ctx context.Context, rec *inventory.Record) error {
	next := inventoryDoc{
		stock:     rec.Stock(),
		version:   rec.Version() + 1,
		updatedAt: rec.UpdatedAt(),
	}

	if r.txn != nil {
		staged, ok := r.txn.inventory[rec.ProductID()]
		if !ok {
			staged.baseVersion = rec.Version()
		} else if staged.doc.version != rec.Version() {
			return infra.WrapRepoErr(r.store.logger, infra.KindConflict, "stale inventory record: "+rec.ProductID(), nil)
		}
		staged.doc = next
		r.txn.inventory[rec.ProductID()] = staged
		return nil
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.unavailable("update inventory"); err != nil {
		return err
	}
	current, ok := s.inventory[rec.ProductID()]
	if !ok {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "inventory not found: "+rec.ProductID(), nil)
	}
	if current.version != rec.Version() {
		return infra.WrapRepoErr(s.logger, infra.KindConflict, "inventory changed since read: "+rec.ProductID(), nil)
	}
	s.inventory[rec.ProductID()] = next
	return nil
}

type ProductionOrderRepository struct {
	store *Store
	txn   *Txn
}

func NewProductionOrderRepository(store *Store, txn *Txn) shared.ProductionOrderRepository {
	return &ProductionOrderRepository{store: store, txn: txn}
}

func (r *ProductionOrderRepository) Create(ctx context.Context, order *production.Order) (string, error) {
	doc := orderDoc{
		productID:     order.ProductID(),
		quantity:      order.Quantity(),
		scheduledDate: order.ScheduledDate(),
		createdBy:     order.CreatedBy(),
		createdAt:     order.CreatedAt(),
		status:        order.Status(),
	}

	if r.txn != nil {
		if _, ok := r.txn.orders[order.ID()]; ok {
			return "", infra.WrapRepoErr(r.store.logger, infra.KindDuplicateKey, "production order exists: "+order.ID(), nil)
		}
		r.txn.orders[order.ID()] = doc
		return order.ID(), nil
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.unavailable("create production order"); err != nil {
		return "", err
	}
	if _, ok := s.orders[order.ID()]; ok {
		return "", infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "production order exists: "+order.ID(), nil)
	}
	s.orders[order.ID()] = doc
	return order.ID(), nil
}

func (r *ProductionOrderRepository) Get(ctx context.Context, id string) (*production.Order, error) {
	if r.txn != nil {
		if doc, ok := r.txn.orders[id]; ok {
			return doc.toDomain(id), nil
		}
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.unavailable("get production order"); err != nil {
		return nil, err
	}
	doc, ok := s.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "production order not found: "+id, nil)
	}
	return doc.toDomain(id), nil
}

// EventRepository applies every change immediately and atomically, inside a
// transaction or not.
type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) shared.EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) Get(ctx context.Context, eventID string) (*event.Event, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.unavailable("get event"); err != nil {
		return nil, err
	}
	doc, ok := s.events[eventID]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "event not found: "+eventID, nil)
	}
	participants := make([]event.Participant, 0, len(doc.participants))
	for userID, p := range doc.participants {
		participants = append(participants, event.ReconstructParticipant(userID, p.name, p.joinedAt))
	}
	return event.Reconstruct(eventID, doc.title, participants), nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, eventID string, p event.Participant) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.unavailable("add participant"); err != nil {
		return false, err
	}
	doc, ok := s.events[eventID]
	if !ok {
		return false, infra.WrapRepoErr(s.logger, infra.KindNotFound, "event not found: "+eventID, nil)
	}
	if _, exists := doc.participants[p.UserID()]; exists {
		return false, nil
	}
	if doc.participants == nil {
		doc.participants = make(map[string]participantDoc)
	}
	doc.participants[p.UserID()] = participantDoc{name: p.Name(), joinedAt: p.JoinedAt()}
	s.events[eventID] = doc
	return true, nil
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.unavailable("remove participant"); err != nil {
		return false, err
	}
	doc, ok := s.events[eventID]
	if !ok {
		return false, infra.WrapRepoErr(s.logger, infra.KindNotFound, "event not found: "+eventID, nil)
	}
	if _, exists := doc.participants[userID]; !exists {
		return false, nil
	}
	delete(doc.participants, userID)
	return true, nil
}

func (r *EventRepository) HasParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.unavailable("has participant"); err != nil {
		return false, err
	}
	doc, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	_, exists := doc.participants[userID]
	return exists, nil
}

type ProfileRepository struct {
	store *Store
	kind  directory.Kind
}

func NewProfileRepository(store *Store, kind directory.Kind) shared.ProfileRepository {
	return &ProfileRepository{store: store, kind: kind}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*directory.Profile, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.unavailable("find profile"); err != nil {
		return nil, err
	}
	if !r.kind.IsValid() {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, string(r.kind), directory.ErrUnknownKind)
	}
	p, ok := s.profiles[r.kind][id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, string(r.kind)+" profile not found: "+id, nil)
	}
	p.Kind = r.kind
	return &p, nil
}
