package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-engine/internal/storage"
)

func TestAllowlistStore_InsertAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewAllowlistStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "0xBBB"))
	require.NoError(t, store.Insert(ctx, "0xAAA"))

	got, err := store.EnabledContracts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xaaa", "0xbbb"}, got)
}

func TestAllowlistStore_DuplicateAcrossCase(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewAllowlistStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "0xaaa"))
	err := store.Insert(ctx, "0xAAA")
	assert.True(t, errors.Is(err, storage.ErrDuplicateKey))
}
