package memstore

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/domain/production"
	"commerce-booking/internal/infra"
)

type inventoryDoc struct {
	stock     int
	version   int64
	updatedAt time.Time
}

type orderDoc struct {
	productID     string
	quantity      int
	scheduledDate time.Time
	createdBy     string
	createdAt     time.Time
	status        production.Status
}

type participantDoc struct {
	name     string
	joinedAt time.Time
}

// A nil participants map stands for a document without the field.
type eventDoc struct {
	title        string
	participants map[string]participantDoc
}

// Store is an in-process document store with optimistic transactions.
// Documents are held by value so a failed transaction cannot leak partial writes.
type Store struct {
	mu        sync.RWMutex
	inventory map[string]inventoryDoc
	orders    map[string]orderDoc
	events    map[string]eventDoc
	profiles  map[directory.Kind]map[string]directory.Profile

	failure      error
	beforeCommit func()
	logger       *slog.Logger
}

func New() *Store {
	return &Store{
		inventory: make(map[string]inventoryDoc),
		orders:    make(map[string]orderDoc),
		events:    make(map[string]eventDoc),
		profiles:  make(map[directory.Kind]map[string]directory.Profile),
		logger:    slog.Default(),
	}
}

func (s *Store) PutInventory(productID string, stock int, updatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.inventory[productID]
	doc.stock = stock
	doc.version++
	doc.updatedAt = updatedAt
	s.inventory[productID] = doc
}

// PutEvent stores an event without a participants field.
func (s *Store) PutEvent(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[id] = eventDoc{title: title}
}

func (s *Store) PutProfile(kind directory.Kind, p directory.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profiles[kind] == nil {
		s.profiles[kind] = make(map[string]directory.Profile)
	}
	s.profiles[kind][p.ID] = p
}

func (s *Store) Stock(productID string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.inventory[productID]
	return doc.stock, ok
}

// Orders returns every stored order ordered by creation time.
func (s *Store) Orders() []*production.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*production.Order, 0, len(s.orders))
	for id, doc := range s.orders {
		out = append(out, doc.toDomain(id))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

// SetFailure makes every operation fail as if the store were unreachable. nil clears it.
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// SetBeforeCommit installs a hook run at the start of every transaction commit.
func (s *Store) SetBeforeCommit(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeCommit = fn
}

// unavailable must be called with s.mu held.
func (s *Store) unavailable(op string) error {
	if s.failure == nil {
		return nil
	}
	return infra.WrapRepoErr(s.logger, infra.KindUnavailable, op, s.failure)
}

func (d orderDoc) toDomain(id string) *production.Order {
	return production.Reconstruct(id, d.productID, d.quantity, d.scheduledDate, d.createdBy, d.createdAt, d.status)
}
