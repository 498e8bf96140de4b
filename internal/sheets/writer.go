package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/common"
	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/report"
	"github.com/Veraticus/global-series-tracker/internal/service"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer implements service.ReportWriter for Google Sheets. Each report
// table becomes one tab of the spreadsheet.
type Writer struct {
	service  *sheets.Service
	logger   *slog.Logger
	progress io.Writer
	now      func() time.Time
	config   Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	svc, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewWriterWithService(svc, config, logger), nil
}

// NewWriterWithService creates a writer over an existing Sheets service.
func NewWriterWithService(svc *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	return &Writer{
		config:   config,
		service:  svc,
		logger:   logger,
		progress: io.Discard,
		now:      time.Now,
	}
}

// SetProgress renders a progress bar to w while tabs are written.
func (w *Writer) SetProgress(out io.Writer) {
	w.progress = out
}

// Write replaces the contents of every report tab.
func (w *Writer) Write(ctx context.Context, sales []model.SaleRecord, products []string) error {
	rep := report.Build(sales, products, w.now())

	w.logger.Info("starting sheets export",
		"sales", len(sales),
		"products", len(products))

	names := make([]string, len(rep.Tables))
	for i, t := range rep.Tables {
		names[i] = t.Name
	}

	spreadsheetID, sheetIDs, err := w.ensureSpreadsheet(ctx, names)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	bar := progressbar.NewOptions(len(rep.Tables),
		progressbar.OptionSetWriter(w.progress),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Exporting to Google Sheets"),
	)

	for _, table := range rep.Tables {
		values := tableValues(table)

		if err := w.clearSheet(ctx, spreadsheetID, table.Name); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table.Name, err)
		}

		err := common.WithRetry(ctx, func() error {
			return w.writeData(ctx, spreadsheetID, table.Name, values)
		}, retryOpts)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", table.Name, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID, sheetIDs)
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", rep.RowCount())

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// ensureSpreadsheet returns the target spreadsheet and the sheet id of every
// named tab, creating the spreadsheet or missing tabs as needed.
func (w *Writer) ensureSpreadsheet(ctx context.Context, names []string) (string, map[string]int64, error) {
	if w.config.SpreadsheetID == "" {
		return w.createSpreadsheet(ctx, names)
	}

	existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
	}

	ids := sheetIDsByTitle(existing.Sheets)
	var requests []*sheets.Request
	for _, name := range names {
		if _, ok := ids[name]; ok {
			continue
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		})
	}

	if len(requests) > 0 {
		resp, err := w.service.Spreadsheets.BatchUpdate(w.config.SpreadsheetID,
			&sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
		if err != nil {
			return "", nil, fmt.Errorf("unable to add sheets: %w", err)
		}
		for _, reply := range resp.Replies {
			if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
				ids[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
			}
		}
	}

	return w.config.SpreadsheetID, ids, nil
}

func (w *Writer) createSpreadsheet(ctx context.Context, names []string) (string, map[string]int64, error) {
	tabs := make([]*sheets.Sheet, len(names))
	for i, name := range names {
		tabs[i] = &sheets.Sheet{
			Properties: &sheets.SheetProperties{
				SheetId: int64(i),
				Title:   name,
			},
		}
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: tabs,
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	ids := sheetIDsByTitle(created.Sheets)
	if len(ids) == 0 {
		for _, tab := range tabs {
			ids[tab.Properties.Title] = tab.Properties.SheetId
		}
	}
	return created.SpreadsheetId, ids, nil
}

func sheetIDsByTitle(list []*sheets.Sheet) map[string]int64 {
	ids := make(map[string]int64, len(list))
	for _, s := range list {
		if s.Properties != nil {
			ids[s.Properties.Title] = s.Properties.SheetId
		}
	}
	return ids
}

// clearSheet clears all data from one tab.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID, sheet string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, a1(sheet, "A:Z"), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// tableValues turns a report table into sheet rows, header first.
func tableValues(table report.Table) [][]any {
	values := make([][]any, 0, len(table.Rows)+1)
	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	values = append(values, header)
	return append(values, table.Rows...)
}

// writeData writes values to a tab in batches.
func (w *Writer) writeData(ctx context.Context, spreadsheetID, sheet string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, a1(sheet, fmt.Sprintf("A%d", i+1)), valueRange).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, classify(err))
		}

		w.logger.Debug("wrote batch", "sheet", sheet, "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds and freezes the header row of every tab.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetIDs map[string]int64) error {
	requests := make([]*sheets.Request, 0, len(sheetIDs)*3)
	for _, id := range sheetIDs {
		requests = append(requests,
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:       id,
						StartRowIndex: 0,
						EndRowIndex:   1,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat",
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: id,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
			&sheets.Request{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{
						SheetId:    id,
						Dimension:  "COLUMNS",
						StartIndex: 0,
						EndIndex:   5,
					},
				},
			},
		)
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return classify(err)
}

// classify maps Sheets API failures onto the retry policy: quota errors
// back off for the maximum delay and other client errors are not retried.
func classify(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != http.StatusRequestTimeout:
		return common.Permanent(err)
	default:
		return err
	}
}

func a1(sheet, cells string) string {
	return "'" + sheet + "'!" + cells
}
