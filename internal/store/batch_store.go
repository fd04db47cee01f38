// Package store holds processing batches in memory for the lifetime of the
// session. Results are deliberately not persisted anywhere durable.
package store

import (
	"sync"

	"github.com/google/uuid"

	"claimcheck/internal/domain"
)

// BatchStore is a mutex-guarded in-memory implementation of port.BatchStore.
type BatchStore struct {
	mu      sync.RWMutex
	batches map[uuid.UUID]*domain.Batch
}

// NewBatchStore creates an empty BatchStore.
func NewBatchStore() *BatchStore {
	return &BatchStore{batches: make(map[uuid.UUID]*domain.Batch)}
}

// Put stores or replaces a batch by its ID.
func (s *BatchStore) Put(batch *domain.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = batch
}

// Get returns the batch with the given ID, if present.
func (s *BatchStore) Get(id uuid.UUID) (*domain.Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.batches[id]
	return b, ok
}
