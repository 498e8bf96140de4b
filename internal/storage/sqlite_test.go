package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestSQLiteStorage_GetMissingKey(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	value, ok, err := store.Get(context.Background(), "gst_sales")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Errorf("Get reported missing key as present")
	}
	if value != "" {
		t.Errorf("Get returned %q for missing key, want empty", value)
	}
}

func TestSQLiteStorage_SetAndOverwrite(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Set(ctx, "gst_products", `["HB851"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "gst_products", `["HB851","HB852"]`); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	value, ok, err := store.Get(ctx, "gst_products")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Key not found after Set")
	}
	if value != `["HB851","HB852"]` {
		t.Errorf("Got %q, want overwritten value", value)
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "gst_products" {
		t.Errorf("Keys = %v, want [gst_products]", keys)
	}
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "gst.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	if err := store.Set(ctx, "gst_sales", `[]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if err := reopened.Migrate(ctx); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}

	value, ok, err := reopened.Get(ctx, "gst_sales")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if value != `[]` {
		t.Errorf("Got %q after reopen, want []", value)
	}
}

func TestSQLiteStorage_RejectsEmptyKey(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Set(ctx, "  ", "x"); !errors.Is(err, ErrEmptyString) {
		t.Errorf("Set with empty key: got %v, want ErrEmptyString", err)
	}
	if _, _, err := store.Get(ctx, ""); !errors.Is(err, ErrEmptyString) {
		t.Errorf("Get with empty key: got %v, want ErrEmptyString", err)
	}
}

func TestNewSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
}
