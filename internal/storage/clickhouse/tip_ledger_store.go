package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"campaign-engine/internal/domain"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/storage"
)

// TipLedgerStore implements storage.TipStore using ClickHouse. The
// ledger is append-only; MergeTree does not enforce uniqueness and none
// is needed here.
type TipLedgerStore struct {
	conn *Conn
}

// NewTipLedgerStore creates a new TipLedgerStore.
func NewTipLedgerStore(conn *Conn) *TipLedgerStore {
	return &TipLedgerStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TipStore = (*TipLedgerStore)(nil)

// Insert appends a ledger row.
func (s *TipLedgerStore) Insert(ctx context.Context, rec *domain.TipRecord) error {
	if rec == nil || rec.CampaignID == 0 {
		return storage.ErrInvalidInput
	}

	query := `INSERT INTO tip_ledger (campaign_id, tip_usd, created_at) VALUES (?, ?, ?)`

	start := time.Now()
	err := s.conn.Exec(ctx, query,
		rec.CampaignID,
		decimal.NewFromFloat(rec.TipUsd),
		rec.CreatedAt,
	)
	observability.RecordDBQuery("clickhouse", "insert_tip", time.Since(start).Seconds(), err)
	if err != nil {
		return fmt.Errorf("insert tip: %w", err)
	}
	return nil
}

// List retrieves all ledger rows ordered by campaign then time.
func (s *TipLedgerStore) List(ctx context.Context) ([]domain.TipRecord, error) {
	query := `SELECT campaign_id, tip_usd, created_at FROM tip_ledger ORDER BY campaign_id, created_at`

	start := time.Now()
	rows, err := s.conn.Query(ctx, query)
	observability.RecordDBQuery("clickhouse", "list_tips", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	defer rows.Close()

	var records []domain.TipRecord
	for rows.Next() {
		var (
			rec domain.TipRecord
			usd decimal.Decimal
		)
		if err := rows.Scan(&rec.CampaignID, &usd, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tip row: %w", err)
		}
		rec.TipUsd, _ = usd.Float64()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tip rows: %w", err)
	}
	return records, nil
}
