package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Veraticus/global-series-tracker/internal/model"
)

// Backfill corrects records loaded from older data: a missing or repeated
// id is replaced with newID(), and a missing customer name becomes
// model.UnknownCustomer. The input slice is not modified. Running Backfill
// on its own output returns an equal slice.
func Backfill(records []model.SaleRecord, newID func() string) []model.SaleRecord {
	out := make([]model.SaleRecord, len(records))
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		if _, dup := seen[rec.ID]; rec.ID == "" || dup {
			rec.ID = newID()
		}
		seen[rec.ID] = struct{}{}

		if rec.CustomerName == "" {
			rec.CustomerName = model.UnknownCustomer
		}
		out[i] = rec
	}

	return out
}

// decodeProducts parses the stored product list. Entries that are not
// strings are dropped.
func decodeProducts(data string) ([]string, error) {
	var raw []any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("products are not a JSON array: %w", err)
	}

	products := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			products = append(products, s)
		}
	}
	return products, nil
}

// decodeSales parses the stored sale list leniently: fields with the wrong
// type are treated as absent and non-object entries are skipped, so older
// or hand-edited data still loads.
func decodeSales(data string) ([]model.SaleRecord, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, 0, fmt.Errorf("sales are not a JSON array: %w", err)
	}

	sales := make([]model.SaleRecord, 0, len(raw))
	skipped := 0
	for _, item := range raw {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			skipped++
			continue
		}
		sales = append(sales, model.SaleRecord{
			ID:           stringField(fields, "id"),
			SeriesName:   stringField(fields, "seriesName"),
			Country:      stringField(fields, "country"),
			CustomerName: stringField(fields, "customerName"),
			Timestamp:    timestampField(fields, "timestamp"),
		})
	}
	return sales, skipped, nil
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

func timestampField(fields map[string]any, name string) int64 {
	switch v := fields[name].(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return n
		}
	}
	return 0
}
