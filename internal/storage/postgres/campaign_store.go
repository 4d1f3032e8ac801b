package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"campaign-engine/internal/domain"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/storage"
)

// CampaignStore implements storage.CampaignStore using PostgreSQL.
type CampaignStore struct {
	pool *Pool
}

// NewCampaignStore creates a new CampaignStore.
func NewCampaignStore(pool *Pool) *CampaignStore {
	return &CampaignStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CampaignStore = (*CampaignStore)(nil)

const campaignColumns = `record_id, campaign_id, contract_address, chain_id, contract_version,
		goal_usd, max_editions, editions_sold, visible, category, metadata_uri, created_at`

// Insert adds a new campaign record. Returns ErrDuplicateKey if record_id exists.
func (s *CampaignStore) Insert(ctx context.Context, rec *domain.CachedCampaignRecord) error {
	if rec == nil || rec.RecordID == 0 {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO campaigns (
			record_id, campaign_id, contract_address, chain_id, contract_version,
			goal_usd, max_editions, editions_sold, visible, category, metadata_uri, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	start := time.Now()
	_, err := s.pool.Exec(ctx, query,
		rec.RecordID,
		rec.CampaignID,
		strings.ToLower(rec.ContractAddress),
		rec.ChainID,
		string(rec.ContractVersion),
		rec.GoalUsd,
		rec.MaxEditions,
		rec.EditionsSold,
		rec.Visible,
		rec.Category,
		rec.MetadataURI,
		rec.CreatedAt,
	)
	observability.RecordDBQuery("postgres", "insert_campaign", time.Since(start).Seconds(), err)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// ListVisible retrieves all visible campaign records ordered by created_at DESC.
func (s *CampaignStore) ListVisible(ctx context.Context) ([]*domain.CachedCampaignRecord, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE visible = TRUE
		ORDER BY created_at DESC, record_id DESC
	`

	start := time.Now()
	rows, err := s.pool.Query(ctx, query)
	observability.RecordDBQuery("postgres", "list_visible_campaigns", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("list visible campaigns: %w", err)
	}
	defer rows.Close()

	return scanCampaigns(rows)
}

// GetByCampaignID retrieves the most recently created visible record for a
// campaign id. Returns ErrNotFound if not exists.
func (s *CampaignStore) GetByCampaignID(ctx context.Context, campaignID int64) (*domain.CachedCampaignRecord, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE visible = TRUE AND campaign_id = $1
		ORDER BY created_at DESC, record_id DESC
		LIMIT 1
	`

	start := time.Now()
	row := s.pool.QueryRow(ctx, query, campaignID)
	rec, err := scanCampaign(row)
	observability.RecordDBQuery("postgres", "get_campaign", time.Since(start).Seconds(), err)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get campaign by id: %w", err)
	}
	return rec, nil
}

// scanCampaign scans a single row into a CachedCampaignRecord.
func scanCampaign(row pgx.Row) (*domain.CachedCampaignRecord, error) {
	var rec domain.CachedCampaignRecord
	var versionStr string

	err := row.Scan(
		&rec.RecordID,
		&rec.CampaignID,
		&rec.ContractAddress,
		&rec.ChainID,
		&versionStr,
		&rec.GoalUsd,
		&rec.MaxEditions,
		&rec.EditionsSold,
		&rec.Visible,
		&rec.Category,
		&rec.MetadataURI,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.ContractVersion = domain.ContractVersion(versionStr)
	return &rec, nil
}

// scanCampaigns scans multiple rows into a slice of CachedCampaignRecord.
func scanCampaigns(rows pgx.Rows) ([]*domain.CachedCampaignRecord, error) {
	var records []*domain.CachedCampaignRecord

	for rows.Next() {
		rec, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaign rows: %w", err)
	}

	return records, nil
}
