// Package service defines the interfaces shared between the application layers.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/model"
)

// Persistence keys for the two stored collections.
const (
	KeyProducts = "gst_products"
	KeySales    = "gst_sales"
)

// KeyValueStore is the persistence port used by the record store.
// Values are opaque strings; a missing key is reported with ok=false and
// no error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// SaleRecorder records a single sale.
type SaleRecorder interface {
	AddSale(ctx context.Context, seriesName, country, customerName string) (model.SaleRecord, error)
}

// SaleBook records sales against the current product set.
type SaleBook interface {
	SaleRecorder
	Products() []string
}

// ProductImporter merges product names into the product set.
type ProductImporter interface {
	ImportProducts(ctx context.Context, names []string) error
}

// Snapshot exposes read-only copies of the stored collections.
type Snapshot interface {
	Sales() []model.SaleRecord
	Products() []string
}

// Ledger is the full record store contract consumed by the user surfaces.
type Ledger interface {
	SaleRecorder
	ProductImporter
	Snapshot
	DeleteSale(ctx context.Context, id string) (bool, error)
	ClearProducts(ctx context.Context) error
}

// ReportWriter exports a sales report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, sales []model.SaleRecord, products []string) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
