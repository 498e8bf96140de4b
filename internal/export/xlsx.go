// Package export writes sales reports to local spreadsheet files.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/report"
	"github.com/schollz/progressbar/v3"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXWriter implements service.ReportWriter for Excel workbooks.
type XLSXWriter struct {
	progress io.Writer
	logger   *slog.Logger
	now      func() time.Time
	path     string
}

// Option configures an XLSXWriter.
type Option func(*XLSXWriter)

// WithProgress renders a progress bar to w while rows are written.
func WithProgress(w io.Writer) Option {
	return func(x *XLSXWriter) { x.progress = w }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(x *XLSXWriter) { x.logger = logger }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(x *XLSXWriter) { x.now = now }
}

// NewXLSXWriter creates a writer that saves the workbook to path.
func NewXLSXWriter(path string, opts ...Option) *XLSXWriter {
	w := &XLSXWriter{
		path:     path,
		progress: io.Discard,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write lays out the report and saves it, replacing any existing file.
func (w *XLSXWriter) Write(ctx context.Context, sales []model.SaleRecord, products []string) error {
	rep := report.Build(sales, products, w.now())

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0F2F1"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	bar := progressbar.NewOptions(rep.RowCount(),
		progressbar.OptionSetWriter(w.progress),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Writing workbook"),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w.progress)
		}),
	)

	for i, table := range rep.Tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, table.Name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", table.Name, err)
		}

		if err := writeTable(f, table, headerStyle, bar); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	_ = bar.Finish()

	w.logger.Info("workbook written",
		"path", w.path,
		"sales", len(sales),
		"sheets", len(rep.Tables))
	return nil
}

func writeTable(f *excelize.File, table report.Table, headerStyle int, bar *progressbar.ProgressBar) error {
	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", table.Name, err)
	}

	lastCol, err := excelize.CoordinatesToCellName(len(table.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(table.Name, "A1", lastCol, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", table.Name, err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if len(row) > 0 {
			if err := f.SetSheetRow(table.Name, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d of %s: %w", i+2, table.Name, err)
			}
		}
		_ = bar.Add(1)
	}

	colName, err := excelize.ColumnNumberToName(len(table.Header))
	if err != nil {
		return err
	}
	return f.SetColWidth(table.Name, "A", colName, 20)
}
