package storage

import (
	"context"

	"campaign-engine/internal/domain"
)

// CampaignStore provides access to campaigns storage. Campaign rows are
// written by the external submission workflow; the engine only needs the
// Insert path for seeding and tests.
type CampaignStore interface {
	// Insert adds a new campaign record. Returns ErrDuplicateKey if record_id exists.
	Insert(ctx context.Context, rec *domain.CachedCampaignRecord) error

	// ListVisible retrieves all visible campaign records ordered by created_at DESC.
	ListVisible(ctx context.Context) ([]*domain.CachedCampaignRecord, error)

	// GetByCampaignID retrieves the most recently created visible record for a
	// campaign id. Returns ErrNotFound if not exists.
	GetByCampaignID(ctx context.Context, campaignID int64) (*domain.CachedCampaignRecord, error)
}

// AllowlistStore provides access to enabled_contracts storage.
type AllowlistStore interface {
	// Insert enables a contract address. Returns ErrDuplicateKey if already enabled.
	Insert(ctx context.Context, contractAddress string) error

	// EnabledContracts retrieves all enabled contract addresses.
	EnabledContracts(ctx context.Context) ([]string, error)
}

// TipStore provides access to the tip_ledger.
type TipStore interface {
	// Insert appends a ledger row.
	Insert(ctx context.Context, rec *domain.TipRecord) error

	// List retrieves all ledger rows.
	List(ctx context.Context) ([]domain.TipRecord, error)
}

// UpdateStore provides access to campaign_updates storage.
type UpdateStore interface {
	// Insert adds an update post. Returns ErrDuplicateKey if update_id exists.
	Insert(ctx context.Context, upd *domain.CampaignUpdate) error

	// CountByCampaign retrieves per-campaign update counts.
	CountByCampaign(ctx context.Context) (map[int64]int64, error)
}
