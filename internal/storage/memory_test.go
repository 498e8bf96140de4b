package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStorage_RoundTrip(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "gst_sales"); ok || err != nil {
		t.Fatalf("empty store Get: ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "gst_sales", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "gst_products", `["A"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := store.Get(ctx, "gst_sales")
	if err != nil || !ok || value != "[]" {
		t.Errorf("Get = %q, %v, %v", value, ok, err)
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "gst_products" || keys[1] != "gst_sales" {
		t.Errorf("Keys = %v, want sorted [gst_products gst_sales]", keys)
	}
}

func TestMemoryStorage_Closed(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := store.Set(ctx, "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after close = %v, want ErrClosed", err)
	}
	if _, _, err := store.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after close = %v, want ErrClosed", err)
	}
}
