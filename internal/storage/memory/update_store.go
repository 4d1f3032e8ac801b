package memory

import (
	"context"
	"sync"

	"campaign-engine/internal/domain"
	"campaign-engine/internal/storage"
)

// UpdateStore is an in-memory implementation of storage.UpdateStore.
type UpdateStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.CampaignUpdate // keyed by update_id
}

// NewUpdateStore creates a new in-memory update store.
func NewUpdateStore() *UpdateStore {
	return &UpdateStore{
		data: make(map[int64]*domain.CampaignUpdate),
	}
}

// Insert adds an update post. Returns ErrDuplicateKey if update_id exists.
func (s *UpdateStore) Insert(_ context.Context, upd *domain.CampaignUpdate) error {
	if upd == nil || upd.UpdateID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[upd.UpdateID]; exists {
		return storage.ErrDuplicateKey
	}
	updCopy := *upd
	s.data[upd.UpdateID] = &updCopy
	return nil
}

// CountByCampaign retrieves per-campaign update counts.
func (s *UpdateStore) CountByCampaign(_ context.Context) (map[int64]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int64)
	for _, upd := range s.data {
		counts[upd.CampaignID]++
	}
	return counts, nil
}

// Verify interface compliance at compile time.
var _ storage.UpdateStore = (*UpdateStore)(nil)
