package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campaign-engine/internal/observability"
	"campaign-engine/internal/storage"
)

// AllowlistStore implements storage.AllowlistStore using PostgreSQL.
// Addresses are stored lowercased so allowlist checks stay case-insensitive.
type AllowlistStore struct {
	pool *Pool
}

// NewAllowlistStore creates a new AllowlistStore.
func NewAllowlistStore(pool *Pool) *AllowlistStore {
	return &AllowlistStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AllowlistStore = (*AllowlistStore)(nil)

// Insert enables a contract address. Returns ErrDuplicateKey if already enabled.
func (s *AllowlistStore) Insert(ctx context.Context, contractAddress string) error {
	addr := strings.ToLower(contractAddress)
	if addr == "" {
		return storage.ErrInvalidInput
	}

	query := `INSERT INTO enabled_contracts (contract_address) VALUES ($1)`

	start := time.Now()
	_, err := s.pool.Exec(ctx, query, addr)
	observability.RecordDBQuery("postgres", "insert_enabled_contract", time.Since(start).Seconds(), err)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert enabled contract: %w", err)
	}
	return nil
}

// EnabledContracts retrieves all enabled contract addresses.
func (s *AllowlistStore) EnabledContracts(ctx context.Context) ([]string, error) {
	query := `SELECT contract_address FROM enabled_contracts ORDER BY contract_address ASC`

	start := time.Now()
	rows, err := s.pool.Query(ctx, query)
	observability.RecordDBQuery("postgres", "list_enabled_contracts", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("list enabled contracts: %w", err)
	}
	defer rows.Close()

	var addrs []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("scan enabled contract row: %w", err)
		}
		addrs = append(addrs, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enabled contract rows: %w", err)
	}
	return addrs, nil
}
