package analysis

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/Veraticus/global-series-tracker/internal/model"
)

// ErrAnalysisInFlight is returned when an analysis is already running.
var ErrAnalysisInFlight = errors.New("analysis already in progress")

// Analyzer is satisfied by Requester.
type Analyzer interface {
	Analyze(ctx context.Context, sales []model.SaleRecord, products []string) Result
}

// Guard allows at most one analysis at a time. Overlapping requests are
// refused rather than queued.
type Guard struct {
	analyzer Analyzer
	busy     atomic.Bool
}

// NewGuard wraps analyzer in a single-slot guard.
func NewGuard(analyzer Analyzer) *Guard {
	return &Guard{analyzer: analyzer}
}

// Busy reports whether an analysis is running.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}

// TryAnalyze runs the analysis unless one is already in flight.
func (g *Guard) TryAnalyze(ctx context.Context, sales []model.SaleRecord, products []string) (Result, error) {
	if !g.busy.CompareAndSwap(false, true) {
		return Result{}, ErrAnalysisInFlight
	}
	defer g.busy.Store(false)

	return g.analyzer.Analyze(ctx, sales, products), nil
}
