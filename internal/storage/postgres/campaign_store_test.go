package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-engine/internal/domain"
	"campaign-engine/internal/storage"
)

func testRecord(recordID, campaignID, createdAt int64) *domain.CachedCampaignRecord {
	return &domain.CachedCampaignRecord{
		RecordID:        recordID,
		CampaignID:      campaignID,
		ContractAddress: "0xAbC0000000000000000000000000000000000001",
		ChainID:         137,
		ContractVersion: domain.VersionV3,
		GoalUsd:         1000,
		MaxEditions:     100,
		EditionsSold:    5,
		Visible:         true,
		Category:        "art",
		MetadataURI:     "ipfs://meta",
		CreatedAt:       createdAt,
	}
}

func TestCampaignStore_InsertAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCampaignStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testRecord(1, 10, 100)))
	require.NoError(t, store.Insert(ctx, testRecord(2, 11, 200)))

	hidden := testRecord(3, 12, 300)
	hidden.Visible = false
	require.NoError(t, store.Insert(ctx, hidden))

	got, err := store.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered newest first; address stored lowercased.
	assert.Equal(t, int64(2), got[0].RecordID)
	assert.Equal(t, int64(1), got[1].RecordID)
	assert.Equal(t, "0xabc0000000000000000000000000000000000001", got[0].ContractAddress)
	assert.Equal(t, domain.VersionV3, got[0].ContractVersion)
}

func TestCampaignStore_DuplicateKey(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCampaignStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testRecord(1, 10, 100)))
	err := store.Insert(ctx, testRecord(1, 10, 100))
	assert.True(t, errors.Is(err, storage.ErrDuplicateKey))
}

func TestCampaignStore_GetByCampaignID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCampaignStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testRecord(1, 10, 100)))
	require.NoError(t, store.Insert(ctx, testRecord(2, 10, 200)))

	got, err := store.GetByCampaignID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.RecordID)

	_, err = store.GetByCampaignID(ctx, 99)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}
