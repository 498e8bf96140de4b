// Package ledger holds the record store: the product set and the sale
// records, kept in memory and written through to a key-value store on
// every change.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/service"
	"github.com/google/uuid"
)

// ErrPersist wraps failures to write a collection to storage. The in-memory
// state is already updated when it is returned.
var ErrPersist = errors.New("failed to persist ledger")

// Store owns the product set and the sale records.
type Store struct {
	kv       service.KeyValueStore
	newID    func() string
	now      func() time.Time
	logger   *slog.Logger
	sales    []model.SaleRecord
	products []string
	mu       sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for new records.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces the time source used for new records.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates an empty store over kv. Call Load to read existing data.
func New(kv service.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		newID:    uuid.NewString,
		now:      time.Now,
		logger:   slog.Default(),
		sales:    []model.SaleRecord{},
		products: []string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store over kv and loads the persisted collections.
func Open(ctx context.Context, kv service.KeyValueStore, opts ...Option) (*Store, error) {
	s := New(kv, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory collections with the persisted ones and
// backfills records written by older versions. Missing keys load as empty
// collections and malformed values are logged and treated as empty; only
// a failing storage read is returned as an error.
func (s *Store) Load(ctx context.Context) error {
	productsRaw, ok, err := s.kv.Get(ctx, service.KeyProducts)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	products := []string{}
	if ok {
		decoded, decodeErr := decodeProducts(productsRaw)
		if decodeErr != nil {
			s.logger.Warn("ignoring malformed product list", "key", service.KeyProducts, "error", decodeErr)
		} else {
			products = decoded
		}
	}

	salesRaw, ok, err := s.kv.Get(ctx, service.KeySales)
	if err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}
	loaded := []model.SaleRecord{}
	if ok {
		decoded, skipped, decodeErr := decodeSales(salesRaw)
		switch {
		case decodeErr != nil:
			s.logger.Warn("ignoring malformed sale list", "key", service.KeySales, "error", decodeErr)
		case skipped > 0:
			s.logger.Warn("skipped malformed sale records", "count", skipped)
			loaded = decoded
		default:
			loaded = decoded
		}
	}

	sales := Backfill(loaded, s.newID)
	changed := !equalSales(loaded, sales)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products
	s.sales = sales

	s.logger.Debug("loaded ledger", "products", len(products), "sales", len(sales), "backfilled", changed)

	if changed {
		if err := s.persistSales(ctx); err != nil {
			s.logger.Warn("failed to store backfilled sale records", "error", err)
		}
	}

	return nil
}

// Sales returns a copy of the sale records, most recent first.
func (s *Store) Sales() []model.SaleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SaleRecord, len(s.sales))
	copy(out, s.sales)
	return out
}

// Products returns a copy of the sorted product set.
func (s *Store) Products() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.products))
	copy(out, s.products)
	return out
}

// AddSale records a sale with a fresh id and the current time and places
// it first. Fields are stored as given; callers validate them. A non-nil
// error only reports that the write to storage failed.
func (s *Store) AddSale(ctx context.Context, seriesName, country, customerName string) (model.SaleRecord, error) {
	rec := model.SaleRecord{
		ID:           s.newID(),
		SeriesName:   seriesName,
		Country:      country,
		CustomerName: customerName,
		Timestamp:    s.now().UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sales := make([]model.SaleRecord, 0, len(s.sales)+1)
	sales = append(sales, rec)
	sales = append(sales, s.sales...)
	s.sales = sales

	return rec, s.persistSales(ctx)
}

// DeleteSale removes the record with the given id. An empty or unknown id
// is a no-op and reports false.
func (s *Store) DeleteSale(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, rec := range s.sales {
		if rec.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	sales := make([]model.SaleRecord, 0, len(s.sales)-1)
	sales = append(sales, s.sales[:idx]...)
	sales = append(sales, s.sales[idx+1:]...)
	s.sales = sales

	return true, s.persistSales(ctx)
}

// ImportProducts merges names into the product set, removing duplicates
// and keeping it sorted.
func (s *Store) ImportProducts(ctx context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = mergeProducts(s.products, names)
	return s.persistProducts(ctx)
}

// ClearProducts empties the product set. Sale records are kept even when
// they name a series that no longer exists.
func (s *Store) ClearProducts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = []string{}
	return s.persistProducts(ctx)
}

func (s *Store) persistSales(ctx context.Context) error {
	return s.persist(ctx, service.KeySales, s.sales)
}

func (s *Store) persistProducts(ctx context.Context) error {
	return s.persist(ctx, service.KeyProducts, s.products)
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersist, key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersist, key, err)
	}
	return nil
}

func mergeProducts(existing, names []string) []string {
	set := make(map[string]struct{}, len(existing)+len(names))
	for _, n := range existing {
		set[n] = struct{}{}
	}
	for _, n := range names {
		set[n] = struct{}{}
	}

	merged := make([]string, 0, len(set))
	for n := range set {
		merged = append(merged, n)
	}
	sort.Strings(merged)
	return merged
}

func equalSales(a, b []model.SaleRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
