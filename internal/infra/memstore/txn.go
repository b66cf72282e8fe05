package memstore

import (
	"commerce-booking/internal/infra"
	"commerce-booking/internal/pkg/errs"
)

var errTxnClosed = errs.New("transaction already closed")

type stagedInventory struct {
	baseVersion int64
	doc         inventoryDoc
}

// Txn buffers inventory and order writes until Commit. Commit fails with a
// conflict when any staged inventory document changed since it was read.
type Txn struct {
	store     *Store
	inventory map[string]stagedInventory
	orders    map[string]orderDoc
	closed    bool
}

func (s *Store) Begin() (*Txn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.unavailable("begin transaction"); err != nil {
		return nil, err
	}
	return &Txn{
		store:     s,
		inventory: make(map[string]stagedInventory),
		orders:    make(map[string]orderDoc),
	}, nil
}

func (t *Txn) Commit() error {
	if t.closed {
		return errTxnClosed
	}
	t.closed = true

	t.store.mu.RLock()
	hook := t.store.beforeCommit
	t.store.mu.RUnlock()
	if hook != nil {
		hook()
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.unavailable("commit transaction"); err != nil {
		return err
	}

	for productID, staged := range t.inventory {
		current, ok := s.inventory[productID]
		if !ok || current.version != staged.baseVersion {
			return infra.WrapRepoErr(s.logger, infra.KindConflict, "inventory changed since read: "+productID, nil)
		}
	}
	for id := range t.orders {
		if _, exists := s.orders[id]; exists {
			return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "production order exists: "+id, nil)
		}
	}

	for productID, staged := range t.inventory {
		s.inventory[productID] = staged.doc
	}
	for id, doc := range t.orders {
		s.orders[id] = doc
	}
	return nil
}

func (t *Txn) Rollback() {
	t.closed = true
	t.inventory = nil
	t.orders = nil
}
