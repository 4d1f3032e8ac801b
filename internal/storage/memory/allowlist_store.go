package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"campaign-engine/internal/storage"
)

// AllowlistStore is an in-memory implementation of storage.AllowlistStore.
// Addresses are stored lowercased.
type AllowlistStore struct {
	mu   sync.RWMutex
	data map[string]struct{}
}

// NewAllowlistStore creates a new in-memory allowlist store.
func NewAllowlistStore() *AllowlistStore {
	return &AllowlistStore{
		data: make(map[string]struct{}),
	}
}

// Insert enables a contract address. Returns ErrDuplicateKey if already enabled.
func (s *AllowlistStore) Insert(_ context.Context, contractAddress string) error {
	addr := strings.ToLower(contractAddress)
	if addr == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[addr]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[addr] = struct{}{}
	return nil
}

// EnabledContracts retrieves all enabled contract addresses.
func (s *AllowlistStore) EnabledContracts(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, 0, len(s.data))
	for addr := range s.data {
		result = append(result, addr)
	}
	sort.Strings(result)
	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.AllowlistStore = (*AllowlistStore)(nil)
