package sheets

import (
	"context"
	"slices"
	"sync"

	"github.com/Veraticus/global-series-tracker/internal/model"
)

// Export is one snapshot received by a RecordingWriter.
type Export struct {
	Sales    []model.SaleRecord
	Products []string
}

// RecordingWriter is an in-memory service.ReportWriter for tests. It keeps
// a copy of every snapshot it is given and fails with Err when set.
type RecordingWriter struct {
	Err     error
	exports []Export
	mu      sync.Mutex
}

// Write records a copy of the snapshot.
func (w *RecordingWriter) Write(_ context.Context, sales []model.SaleRecord, products []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.Err != nil {
		return w.Err
	}
	w.exports = append(w.exports, Export{
		Sales:    slices.Clone(sales),
		Products: slices.Clone(products),
	})
	return nil
}

// Exports returns the recorded snapshots, oldest first.
func (w *RecordingWriter) Exports() []Export {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.exports)
}
