// Package views computes the derived views shown by the explorer and the
// reports. Every function is pure: the same input always yields the same
// output and inputs are never modified.
package views

import (
	"sort"
	"strings"

	"github.com/Veraticus/global-series-tracker/internal/model"
)

// DistinctCountries returns every country that appears in sales, sorted.
func DistinctCountries(sales []model.SaleRecord) []string {
	return distinct(sales, func(s model.SaleRecord) string { return s.Country })
}

// DistinctProducts returns every series name that appears in sales, sorted.
// Unlike the product set it includes series that were since cleared.
func DistinctProducts(sales []model.SaleRecord) []string {
	return distinct(sales, func(s model.SaleRecord) string { return s.SeriesName })
}

// CrossReference lists what was sold against the selected item. With
// ViewByCountry it returns the series sold to the selected country; with
// ViewBySeries it returns the countries the selected series was sold to.
// The result is sorted and free of duplicates, and empty when selected is
// empty, nothing matches, or the mode is not a cross-reference mode.
func CrossReference(sales []model.SaleRecord, mode model.ViewMode, selected string) []string {
	if selected == "" {
		return []string{}
	}

	var match, project func(model.SaleRecord) string
	switch mode {
	case model.ViewByCountry:
		match = func(s model.SaleRecord) string { return s.Country }
		project = func(s model.SaleRecord) string { return s.SeriesName }
	case model.ViewBySeries:
		match = func(s model.SaleRecord) string { return s.SeriesName }
		project = func(s model.SaleRecord) string { return s.Country }
	default:
		return []string{}
	}

	set := make(map[string]struct{})
	for _, s := range sales {
		if match(s) == selected {
			set[project(s)] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// SearchHistory returns the records whose series, country or customer
// contains term, ignoring case, in their original order. An empty term
// matches every record.
func SearchHistory(sales []model.SaleRecord, term string) []model.SaleRecord {
	needle := strings.ToLower(term)
	out := make([]model.SaleRecord, 0, len(sales))
	for _, s := range sales {
		if needle == "" ||
			strings.Contains(strings.ToLower(s.SeriesName), needle) ||
			strings.Contains(strings.ToLower(s.Country), needle) ||
			strings.Contains(strings.ToLower(s.CustomerName), needle) {
			out = append(out, s)
		}
	}
	return out
}

// SelectionOptions returns the items the explorer offers for selection in
// mode: the countries seen in sales for ViewByCountry and the product set
// for ViewBySeries.
func SelectionOptions(mode model.ViewMode, sales []model.SaleRecord, products []string) []string {
	switch mode {
	case model.ViewByCountry:
		return DistinctCountries(sales)
	case model.ViewBySeries:
		out := make([]string, len(products))
		copy(out, products)
		return out
	default:
		return []string{}
	}
}

// FilterOptions keeps the options containing term, ignoring case.
func FilterOptions(options []string, term string) []string {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]string, 0, len(options))
	for _, o := range options {
		if needle == "" || strings.Contains(strings.ToLower(o), needle) {
			out = append(out, o)
		}
	}
	return out
}

// CountByCountry returns the number of sales per country.
func CountByCountry(sales []model.SaleRecord) map[string]int {
	return count(sales, func(s model.SaleRecord) string { return s.Country })
}

// CountByCustomer returns the number of sales per customer.
func CountByCustomer(sales []model.SaleRecord) map[string]int {
	return count(sales, func(s model.SaleRecord) string { return s.CustomerName })
}

// Tally is one row of a ranked count.
type Tally struct {
	Name  string
	Count int
}

// Ranked orders counts by descending count, then by name.
func Ranked(counts map[string]int) []Tally {
	out := make([]Tally, 0, len(counts))
	for name, n := range counts {
		out = append(out, Tally{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func distinct(sales []model.SaleRecord, field func(model.SaleRecord) string) []string {
	set := make(map[string]struct{})
	for _, s := range sales {
		set[field(s)] = struct{}{}
	}
	return sortedKeys(set)
}

func count(sales []model.SaleRecord, field func(model.SaleRecord) string) map[string]int {
	out := make(map[string]int)
	for _, s := range sales {
		out[field(s)]++
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
