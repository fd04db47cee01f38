package port

import (
	"github.com/google/uuid"

	"claimcheck/internal/domain"
)

// BatchStore holds processing batches for the lifetime of the session.
// Implementations are in-memory only; batches are never persisted.
type BatchStore interface {
	Put(batch *domain.Batch)
	Get(id uuid.UUID) (*domain.Batch, bool)
}
