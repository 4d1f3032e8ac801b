package memory

import (
	"context"
	"errors"
	"testing"

	"campaign-engine/internal/storage"
)

func TestAllowlistStore_InsertLowercases(t *testing.T) {
	store := NewAllowlistStore()
	ctx := context.Background()

	if err := store.Insert(ctx, "0xAbCdEf"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.EnabledContracts(ctx)
	if err != nil {
		t.Fatalf("EnabledContracts failed: %v", err)
	}
	if len(got) != 1 || got[0] != "0xabcdef" {
		t.Errorf("expected [0xabcdef], got %v", got)
	}
}

func TestAllowlistStore_DuplicateAcrossCase(t *testing.T) {
	store := NewAllowlistStore()
	ctx := context.Background()

	_ = store.Insert(ctx, "0xaaa")
	if err := store.Insert(ctx, "0xAAA"); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestAllowlistStore_EmptyAddress(t *testing.T) {
	store := NewAllowlistStore()
	if err := store.Insert(context.Background(), ""); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
