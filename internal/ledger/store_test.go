package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/service"
	"github.com/Veraticus/global-series-tracker/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyKV wraps a MemoryStorage and can be told to fail reads or writes.
type flakyKV struct {
	*storage.MemoryStorage
	getErr error
	setErr error
	sets   int
}

func newFlakyKV() *flakyKV {
	return &flakyKV{MemoryStorage: storage.NewMemoryStorage()}
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryStorage.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStorage.Set(ctx, key, value)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func newTestStore(t *testing.T, kv service.KeyValueStore) *Store {
	t.Helper()
	s, err := Open(context.Background(), kv,
		WithIDGenerator(sequentialIDs()),
		WithClock(steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))),
	)
	require.NoError(t, err)
	return s
}

func storedSales(t *testing.T, kv service.KeyValueStore) []model.SaleRecord {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), service.KeySales)
	require.NoError(t, err)
	require.True(t, ok, "sales were never persisted")
	var sales []model.SaleRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &sales))
	return sales
}

func storedProducts(t *testing.T, kv service.KeyValueStore) []string {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), service.KeyProducts)
	require.NoError(t, err)
	require.True(t, ok, "products were never persisted")
	var products []string
	require.NoError(t, json.Unmarshal([]byte(raw), &products))
	return products
}

func TestStore_OpenEmpty(t *testing.T) {
	kv := newFlakyKV()
	s := newTestStore(t, kv)

	assert.Empty(t, s.Sales())
	assert.Empty(t, s.Products())
	assert.NotNil(t, s.Sales())
	assert.NotNil(t, s.Products())
	assert.Zero(t, kv.sets, "loading empty storage should not write")
}

func TestStore_AddSale(t *testing.T) {
	kv := newFlakyKV()
	s := newTestStore(t, kv)
	ctx := context.Background()

	inputs := []struct{ series, country, customer string }{
		{"HB851", "Japan", "Acme"},
		{"HB852", "Germany", "LLC Tech"},
		{"HB853", "Brazil", "Client A"},
		{"HB851", "Japan", "Acme"},
	}
	for _, in := range inputs {
		_, err := s.AddSale(ctx, in.series, in.country, in.customer)
		require.NoError(t, err)
	}

	sales := s.Sales()
	require.Len(t, sales, len(inputs))

	ids := make(map[string]struct{})
	for _, rec := range sales {
		assert.NotEmpty(t, rec.ID)
		ids[rec.ID] = struct{}{}
	}
	assert.Len(t, ids, len(inputs), "ids must be distinct")

	// Most recent first.
	for i := 0; i < len(sales)-1; i++ {
		assert.Greater(t, sales[i].Timestamp, sales[i+1].Timestamp)
	}
	assert.Equal(t, "Brazil", sales[1].Country)
	assert.Equal(t, "HB851", sales[len(sales)-1].SeriesName)

	assert.Equal(t, sales, storedSales(t, kv))
}

func TestStore_AddSale_ReturnsRecord(t *testing.T) {
	s := newTestStore(t, newFlakyKV())

	rec, err := s.AddSale(context.Background(), "HB851", "Japan", "Acme")
	require.NoError(t, err)
	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC).UnixMilli(), rec.Timestamp)
	assert.Equal(t, rec, s.Sales()[0])
}

func TestStore_DeleteSale(t *testing.T) {
	kv := newFlakyKV()
	s := newTestStore(t, kv)
	ctx := context.Background()

	first, err := s.AddSale(ctx, "HB851", "Japan", "Acme")
	require.NoError(t, err)
	second, err := s.AddSale(ctx, "HB900", "Japan", "Acme")
	require.NoError(t, err)

	removed, err := s.DeleteSale(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	afterOnce := s.Sales()
	assert.Equal(t, []model.SaleRecord{second}, afterOnce)

	// Deleting again is a no-op.
	writes := kv.sets
	removed, err = s.DeleteSale(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, afterOnce, s.Sales())
	assert.Equal(t, writes, kv.sets, "no-op delete must not write")

	assert.Equal(t, afterOnce, storedSales(t, kv))
}

func TestStore_DeleteSale_UnknownAndEmpty(t *testing.T) {
	s := newTestStore(t, newFlakyKV())
	ctx := context.Background()

	_, err := s.AddSale(ctx, "HB851", "Japan", "Acme")
	require.NoError(t, err)
	before := s.Sales()

	for _, id := range []string{"", "missing"} {
		removed, err := s.DeleteSale(ctx, id)
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, before, s.Sales())
	}
}

func TestStore_ImportProducts_OrderIndependent(t *testing.T) {
	a := []string{"HB852", "HB851", "HB851"}
	b := []string{"HB900", "HB852", "AX1"}
	ctx := context.Background()

	separate := newTestStore(t, newFlakyKV())
	require.NoError(t, separate.ImportProducts(ctx, a))
	require.NoError(t, separate.ImportProducts(ctx, b))

	reversed := newTestStore(t, newFlakyKV())
	require.NoError(t, reversed.ImportProducts(ctx, b))
	require.NoError(t, reversed.ImportProducts(ctx, a))

	combinedKV := newFlakyKV()
	combined := newTestStore(t, combinedKV)
	require.NoError(t, combined.ImportProducts(ctx, append(append([]string{}, a...), b...)))

	want := []string{"AX1", "HB851", "HB852", "HB900"}
	assert.Equal(t, want, separate.Products())
	assert.Equal(t, want, reversed.Products())
	assert.Equal(t, want, combined.Products())
	assert.Equal(t, want, storedProducts(t, combinedKV))
}

func TestStore_ImportProducts_CaseSensitive(t *testing.T) {
	s := newTestStore(t, newFlakyKV())
	require.NoError(t, s.ImportProducts(context.Background(), []string{"hb851", "HB851"}))
	assert.Equal(t, []string{"HB851", "hb851"}, s.Products())
}

func TestStore_ClearProducts_KeepsSales(t *testing.T) {
	kv := newFlakyKV()
	s := newTestStore(t, kv)
	ctx := context.Background()

	require.NoError(t, s.ImportProducts(ctx, []string{"HB851"}))
	_, err := s.AddSale(ctx, "HB851", "Japan", "Acme")
	require.NoError(t, err)

	require.NoError(t, s.ClearProducts(ctx))
	assert.Empty(t, s.Products())
	assert.Equal(t, []string{}, storedProducts(t, kv))

	sales := s.Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, "HB851", sales[0].SeriesName, "dangling series name is kept")
}

func TestStore_SnapshotsAreCopies(t *testing.T) {
	s := newTestStore(t, newFlakyKV())
	ctx := context.Background()
	require.NoError(t, s.ImportProducts(ctx, []string{"HB851"}))
	_, err := s.AddSale(ctx, "HB851", "Japan", "Acme")
	require.NoError(t, err)

	products := s.Products()
	products[0] = "mutated"
	sales := s.Sales()
	sales[0].Country = "mutated"

	assert.Equal(t, "HB851", s.Products()[0])
	assert.Equal(t, "Japan", s.Sales()[0].Country)
}

func TestStore_PersistFailureKeepsMemory(t *testing.T) {
	kv := newFlakyKV()
	s := newTestStore(t, kv)
	ctx := context.Background()

	kv.setErr = errors.New("quota exceeded")

	rec, err := s.AddSale(ctx, "HB851", "Japan", "Acme")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, []model.SaleRecord{rec}, s.Sales())

	err = s.ImportProducts(ctx, []string{"HB851"})
	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, []string{"HB851"}, s.Products())

	// Once storage recovers the next write carries the full collection.
	kv.setErr = nil
	_, err = s.AddSale(ctx, "HB900", "Japan", "Acme")
	require.NoError(t, err)
	assert.Len(t, storedSales(t, kv), 2)
}

func TestStore_LoadReadFailure(t *testing.T) {
	kv := newFlakyKV()
	kv.getErr = errors.New("disk gone")

	_, err := Open(context.Background(), kv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load products")
}

func TestStore_LoadRoundTrip(t *testing.T) {
	kv := newFlakyKV()
	ctx := context.Background()

	s := newTestStore(t, kv)
	require.NoError(t, s.ImportProducts(ctx, []string{"HB851", "HB900"}))
	_, err := s.AddSale(ctx, "HB851", "Japan", "Acme")
	require.NoError(t, err)
	_, err = s.AddSale(ctx, "HB900", "Japan", "Acme")
	require.NoError(t, err)

	reloaded, err := Open(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, s.Sales(), reloaded.Sales())
	assert.Equal(t, s.Products(), reloaded.Products())
}

func TestStore_LoadBackfillsLegacyRecords(t *testing.T) {
	kv := newFlakyKV()
	ctx := context.Background()

	legacy := `[
		{"seriesName":"HB851","country":"Japan","timestamp":1700000000000},
		{"id":"keep","seriesName":"HB852","country":"China","customerName":"Acme","timestamp":1690000000000}
	]`
	require.NoError(t, kv.MemoryStorage.Set(ctx, service.KeySales, legacy))

	s := newTestStore(t, kv)
	sales := s.Sales()
	require.Len(t, sales, 2)
	assert.Equal(t, "id-1", sales[0].ID)
	assert.Equal(t, model.UnknownCustomer, sales[0].CustomerName)
	assert.Equal(t, int64(1700000000000), sales[0].Timestamp)
	assert.Equal(t, "keep", sales[1].ID)
	assert.Equal(t, "Acme", sales[1].CustomerName)

	// The corrected records are written back.
	assert.Equal(t, sales, storedSales(t, kv))

	// A second load finds nothing to fix.
	writes := kv.sets
	again, err := Open(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, sales, again.Sales())
	assert.Equal(t, writes, kv.sets)
}

func TestStore_LoadMalformedData(t *testing.T) {
	tests := []struct {
		name      string
		products  string
		sales     string
		wantSales int
		wantProds int
	}{
		{name: "not json", products: "{oops", sales: "nope", wantSales: 0, wantProds: 0},
		{name: "wrong shape", products: `{"a":1}`, sales: `"text"`, wantSales: 0, wantProds: 0},
		{name: "mixed entries", products: `["A", 3, null, "B"]`, sales: `[1, {"seriesName":"X","country":"Y","timestamp":"17"}, "s"]`, wantSales: 1, wantProds: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newFlakyKV()
			ctx := context.Background()
			require.NoError(t, kv.MemoryStorage.Set(ctx, service.KeyProducts, tt.products))
			require.NoError(t, kv.MemoryStorage.Set(ctx, service.KeySales, tt.sales))

			s, err := Open(ctx, kv)
			require.NoError(t, err)
			assert.Len(t, s.Sales(), tt.wantSales)
			assert.Len(t, s.Products(), tt.wantProds)
		})
	}
}
