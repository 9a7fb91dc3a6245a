package resume

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store implementation, for tests and for
// pipelines whose records live entirely in the caller's process.
type MemStore struct {
	mu       sync.RWMutex
	outcomes map[string]Outcome
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{outcomes: make(map[string]Outcome)}
}

// Load retrieves an item's outcome. Returns ok=false on miss.
func (s *MemStore) Load(_ context.Context, itemID string) (Outcome, bool, error) {
	s.mu.RLock()
	out, ok := s.outcomes[itemID]
	s.mu.RUnlock()
	return out, ok, nil
}

// Save stores an item's outcome, replacing any previous one.
func (s *MemStore) Save(_ context.Context, itemID string, out Outcome) error {
	s.mu.Lock()
	s.outcomes[itemID] = out
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored outcomes.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outcomes)
}

// Ensure MemStore implements Store
var _ Store = (*MemStore)(nil)
