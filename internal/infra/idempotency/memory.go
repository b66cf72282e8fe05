package idempotency

import (
	"context"
	"sync"
	"time"

	"commerce-booking/internal/pkg/clock"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/commands"
)

type memoryEntry struct {
	record
	expiresAt time.Time
}

// MemoryStore is the single-process store used without Redis. Expired
// entries are swept from Begin at most once per ttl.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	clock     clock.Clock
	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration, clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		entries:   make(map[string]memoryEntry),
		ttl:       ttl,
		clock:     clk,
		lastSweep: clk.Now(),
	}
}

// Len counts stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweep must be called with s.mu held.
func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) Begin(_ context.Context, key, requestHash string) (*commands.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now)
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		return e.toCommand(key), false, nil
	}
	s.entries[key] = memoryEntry{
		record:    record{RequestHash: requestHash, Status: commands.IdempotencyProcessing},
		expiresAt: now.Add(s.ttl),
	}
	return nil, true, nil
}

func (s *MemoryStore) Complete(_ context.Context, key, resultID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !s.clock.Now().Before(e.expiresAt) {
		return errs.Newf("idempotency key %s expired before completion", key)
	}
	e.Status = commands.IdempotencyCompleted
	e.ResultID = resultID
	s.entries[key] = e
	return nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
