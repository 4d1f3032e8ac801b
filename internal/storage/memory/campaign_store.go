package memory

import (
	"context"
	"sort"
	"sync"

	"campaign-engine/internal/domain"
	"campaign-engine/internal/storage"
)

// CampaignStore is an in-memory implementation of storage.CampaignStore.
type CampaignStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.CachedCampaignRecord // keyed by record_id
}

// NewCampaignStore creates a new in-memory campaign store.
func NewCampaignStore() *CampaignStore {
	return &CampaignStore{
		data: make(map[int64]*domain.CachedCampaignRecord),
	}
}

// Insert adds a new campaign record. Returns ErrDuplicateKey if record_id exists.
func (s *CampaignStore) Insert(_ context.Context, rec *domain.CachedCampaignRecord) error {
	if rec == nil || rec.RecordID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[rec.RecordID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	recCopy := *rec
	s.data[rec.RecordID] = &recCopy
	return nil
}

// ListVisible retrieves all visible campaign records ordered by created_at DESC.
func (s *CampaignStore) ListVisible(_ context.Context) ([]*domain.CachedCampaignRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.CachedCampaignRecord
	for _, rec := range s.data {
		if rec.Visible {
			recCopy := *rec
			result = append(result, &recCopy)
		}
	}

	// Sort by created_at DESC, record_id DESC as tie-break
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt > result[j].CreatedAt
		}
		return result[i].RecordID > result[j].RecordID
	})

	return result, nil
}

// GetByCampaignID retrieves the most recently created visible record for a
// campaign id. Returns ErrNotFound if not exists.
func (s *CampaignStore) GetByCampaignID(_ context.Context, campaignID int64) (*domain.CachedCampaignRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.CachedCampaignRecord
	for _, rec := range s.data {
		if !rec.Visible || rec.CampaignID != campaignID {
			continue
		}
		if latest == nil || rec.CreatedAt > latest.CreatedAt {
			latest = rec
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}

	recCopy := *latest
	return &recCopy, nil
}

// Verify interface compliance at compile time.
var _ storage.CampaignStore = (*CampaignStore)(nil)
