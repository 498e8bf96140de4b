// Package analysis produces AI-written sales insights from a compact summary
// of the recorded sales.
package analysis

import (
	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/views"
)

// RecentSalesLimit is how many of the most recent sales the summary lists.
const RecentSalesLimit = 10

// Summary is the compact snapshot sent to the model.
type Summary struct {
	CountryDistribution map[string]int `json:"countryDistribution"`
	CustomerActivity    map[string]int `json:"customerActivity"`
	RecentSales         []string       `json:"recentSales"`
	TotalProducts       int            `json:"totalProducts"`
	TotalSalesRecorded  int            `json:"totalSalesRecorded"`
}

// BuildSummary summarizes sales in store order (most recent first).
func BuildSummary(sales []model.SaleRecord, products []string) Summary {
	n := len(sales)
	if n > RecentSalesLimit {
		n = RecentSalesLimit
	}

	recent := make([]string, 0, n)
	for _, s := range sales[:n] {
		recent = append(recent, s.Summary())
	}

	return Summary{
		TotalProducts:       len(products),
		TotalSalesRecorded:  len(sales),
		RecentSales:         recent,
		CountryDistribution: views.CountByCountry(sales),
		CustomerActivity:    views.CountByCustomer(sales),
	}
}
