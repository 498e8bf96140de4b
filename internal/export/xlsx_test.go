package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fixture() []model.SaleRecord {
	ts := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC).UnixMilli()
	return []model.SaleRecord{
		{ID: "2", SeriesName: "HB852", Country: "Japan", CustomerName: "Acme", Timestamp: ts},
		{ID: "1", SeriesName: "HB851", Country: "Japan", CustomerName: "Zeta", Timestamp: ts},
	}
}

func TestXLSXWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	var progress bytes.Buffer
	w := NewXLSXWriter(path,
		WithProgress(&progress),
		WithClock(func() time.Time { return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC) }))

	require.NoError(t, w.Write(context.Background(), fixture(), []string{"HB851", "HB852"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t,
		[]string{report.SalesTable, report.ByCountryTable, report.BySeriesTable, report.SummaryTable},
		f.GetSheetList())

	rows, err := f.GetRows(report.SalesTable)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Series", "Country", "Customer", "ID"}, rows[0])
	assert.Equal(t, []string{"2025-03-14 08:00", "HB852", "Japan", "Acme", "2"}, rows[1])

	cross, err := f.GetRows(report.ByCountryTable)
	require.NoError(t, err)
	require.Len(t, cross, 2)
	assert.Equal(t, []string{"Japan", "HB851, HB852", "2"}, cross[1])

	assert.NotEmpty(t, progress.String())
}

func TestXLSXWriter_CanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewXLSXWriter(path).Write(ctx, fixture(), nil)

	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}
