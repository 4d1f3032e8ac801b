package memory

import (
	"context"
	"sync"

	"campaign-engine/internal/domain"
	"campaign-engine/internal/storage"
)

// TipStore is an in-memory implementation of storage.TipStore. The
// ledger is append-only; rows are returned in insertion order.
type TipStore struct {
	mu   sync.RWMutex
	data []domain.TipRecord
}

// NewTipStore creates a new in-memory tip store.
func NewTipStore() *TipStore {
	return &TipStore{}
}

// Insert appends a ledger row.
func (s *TipStore) Insert(_ context.Context, rec *domain.TipRecord) error {
	if rec == nil || rec.CampaignID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append(s.data, *rec)
	return nil
}

// List retrieves all ledger rows.
func (s *TipStore) List(_ context.Context) ([]domain.TipRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.TipRecord, len(s.data))
	copy(result, s.data)
	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.TipStore = (*TipStore)(nil)
