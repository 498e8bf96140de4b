// Package report lays out the recorded sales as named tables for the
// spreadsheet exporters.
package report

import (
	"strings"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/views"
)

// Table names, used as sheet titles by the exporters.
const (
	SalesTable     = "Sales"
	ByCountryTable = "By Country"
	BySeriesTable  = "By Series"
	SummaryTable   = "Summary"
)

// Table is a titled grid of cells with a header row.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Report holds every table of a sales export.
type Report struct {
	GeneratedAt time.Time
	Tables      []Table
}

// RowCount returns the number of data rows across all tables.
func (r Report) RowCount() int {
	n := 0
	for _, t := range r.Tables {
		n += len(t.Rows)
	}
	return n
}

// Build lays out sales (store order) and products as a report.
func Build(sales []model.SaleRecord, products []string, generatedAt time.Time) Report {
	return Report{
		GeneratedAt: generatedAt,
		Tables: []Table{
			salesTable(sales),
			crossTable(ByCountryTable, "Country", "Series Sold", views.DistinctCountries(sales), sales, model.ViewByCountry),
			crossTable(BySeriesTable, "Series", "Countries", views.DistinctProducts(sales), sales, model.ViewBySeries),
			summaryTable(sales, products, generatedAt),
		},
	}
}

func salesTable(sales []model.SaleRecord) Table {
	rows := make([][]any, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []any{
			s.Time().UTC().Format("2006-01-02 15:04"),
			s.SeriesName,
			s.Country,
			s.CustomerName,
			s.ID,
		})
	}
	return Table{
		Name:   SalesTable,
		Header: []string{"Date", "Series", "Country", "Customer", "ID"},
		Rows:   rows,
	}
}

func crossTable(name, keyCol, listCol string, keys []string, sales []model.SaleRecord, mode model.ViewMode) Table {
	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		related := views.CrossReference(sales, mode, k)
		rows = append(rows, []any{k, strings.Join(related, ", "), len(related)})
	}
	return Table{
		Name:   name,
		Header: []string{keyCol, listCol, "Count"},
		Rows:   rows,
	}
}

func summaryTable(sales []model.SaleRecord, products []string, generatedAt time.Time) Table {
	byCountry := views.CountByCountry(sales)
	byCustomer := views.CountByCustomer(sales)

	rows := [][]any{
		{"Generated", generatedAt.UTC().Format(time.RFC3339)},
		{"Total Products", len(products)},
		{"Total Sales", len(sales)},
		{"Countries", len(byCountry)},
		{"Customers", len(byCustomer)},
		{},
		{"Sales by Country"},
	}
	for _, t := range views.Ranked(byCountry) {
		rows = append(rows, []any{t.Name, t.Count})
	}
	rows = append(rows, []any{}, []any{"Sales by Customer"})
	for _, t := range views.Ranked(byCustomer) {
		rows = append(rows, []any{t.Name, t.Count})
	}

	return Table{
		Name:   SummaryTable,
		Header: []string{"Metric", "Value"},
		Rows:   rows,
	}
}
