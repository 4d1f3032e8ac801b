package postgres

import (
	"context"
	"fmt"
	"time"

	"campaign-engine/internal/domain"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/storage"
)

// UpdateStore implements storage.UpdateStore using PostgreSQL.
type UpdateStore struct {
	pool *Pool
}

// NewUpdateStore creates a new UpdateStore.
func NewUpdateStore(pool *Pool) *UpdateStore {
	return &UpdateStore{pool: pool}
}

// Compile-time interface check.
var _ storage.UpdateStore = (*UpdateStore)(nil)

// Insert adds an update post. Returns ErrDuplicateKey if update_id exists.
func (s *UpdateStore) Insert(ctx context.Context, upd *domain.CampaignUpdate) error {
	if upd == nil || upd.UpdateID == 0 {
		return storage.ErrInvalidInput
	}

	query := `INSERT INTO campaign_updates (update_id, campaign_id, created_at) VALUES ($1, $2, $3)`

	start := time.Now()
	_, err := s.pool.Exec(ctx, query, upd.UpdateID, upd.CampaignID, upd.CreatedAt)
	observability.RecordDBQuery("postgres", "insert_campaign_update", time.Since(start).Seconds(), err)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert campaign update: %w", err)
	}
	return nil
}

// CountByCampaign retrieves per-campaign update counts.
func (s *UpdateStore) CountByCampaign(ctx context.Context) (map[int64]int64, error) {
	query := `SELECT campaign_id, COUNT(*) FROM campaign_updates GROUP BY campaign_id`

	start := time.Now()
	rows, err := s.pool.Query(ctx, query)
	observability.RecordDBQuery("postgres", "count_campaign_updates", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("count campaign updates: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var campaignID, count int64
		if err := rows.Scan(&campaignID, &count); err != nil {
			return nil, fmt.Errorf("scan update count row: %w", err)
		}
		counts[campaignID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate update count rows: %w", err)
	}
	return counts, nil
}
