// Package testutil provides test helpers for building record stores over
// in-memory storage and seeding them with sales data.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/service"
	"github.com/Veraticus/global-series-tracker/internal/storage"
)

// Epoch is the clock start used by test stores.
var Epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// TestDB is a migrated in-memory SQLite database with a ledger on top.
type TestDB struct {
	Storage *storage.SQLiteStorage
	Store   *ledger.Store
	t       *testing.T
}

// SetupTestDB creates an in-memory SQLite database, runs migrations and
// opens a ledger over it. The ledger uses sequential ids and a clock that
// advances one minute per record, starting at Epoch.
func SetupTestDB(t *testing.T, fixture Fixture) *TestDB {
	t.Helper()

	kv, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := kv.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = kv.Close()
	})

	return &TestDB{
		Storage: kv,
		Store:   seed(t, ctx, ledgerOver(t, kv), fixture),
		t:       t,
	}
}

// NewMemoryStore returns a ledger over MemoryStorage seeded with fixture.
func NewMemoryStore(t *testing.T, fixture Fixture) *ledger.Store {
	t.Helper()
	return seed(t, context.Background(), ledgerOver(t, storage.NewMemoryStorage()), fixture)
}

// Reopen loads a fresh ledger from the same database.
func (db *TestDB) Reopen() *ledger.Store {
	db.t.Helper()
	return ledgerOver(db.t, db.Storage)
}

func ledgerOver(t *testing.T, kv service.KeyValueStore) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(context.Background(), kv,
		ledger.WithIDGenerator(SequentialIDs()),
		ledger.WithClock(SteppingClock(Epoch, time.Minute)),
		ledger.WithLogger(QuietLogger()),
	)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	return store
}

func seed(t *testing.T, ctx context.Context, store *ledger.Store, fixture Fixture) *ledger.Store {
	t.Helper()
	if len(fixture.Products) > 0 {
		if err := store.ImportProducts(ctx, fixture.Products); err != nil {
			t.Fatalf("failed to seed products: %v", err)
		}
	}
	for _, s := range fixture.Sales {
		if _, err := store.AddSale(ctx, s.Series, s.Country, s.Customer); err != nil {
			t.Fatalf("failed to seed sale %s -> %s: %v", s.Series, s.Country, err)
		}
	}
	return store
}

// SequentialIDs returns an id generator yielding "id-1", "id-2", ...
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// SteppingClock returns a clock that starts at start and advances by step
// on every call.
func SteppingClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}

// QuietLogger discards all output.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
