package analysis

import (
	"fmt"
	"testing"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/stretchr/testify/assert"
)

func makeSales(n int) []model.SaleRecord {
	sales := make([]model.SaleRecord, n)
	for i := range sales {
		sales[i] = model.SaleRecord{
			ID:           fmt.Sprintf("id-%d", i),
			SeriesName:   fmt.Sprintf("HB%d", 900-i),
			Country:      []string{"Japan", "Brazil"}[i%2],
			CustomerName: "Acme",
		}
	}
	return sales
}

func TestBuildSummary(t *testing.T) {
	sales := makeSales(12)

	s := BuildSummary(sales, []string{"HB851", "HB852"})

	assert.Equal(t, 2, s.TotalProducts)
	assert.Equal(t, 12, s.TotalSalesRecorded)
	assert.Len(t, s.RecentSales, RecentSalesLimit)
	assert.Equal(t, "HB900 -> Japan (Acme)", s.RecentSales[0], "most recent sale comes first")
	assert.Equal(t, "HB891 -> Brazil (Acme)", s.RecentSales[9])
	assert.Equal(t, map[string]int{"Japan": 6, "Brazil": 6}, s.CountryDistribution)
	assert.Equal(t, map[string]int{"Acme": 12}, s.CustomerActivity)
}

func TestBuildSummary_FewSales(t *testing.T) {
	s := BuildSummary(makeSales(3), nil)

	assert.Len(t, s.RecentSales, 3)
	assert.Zero(t, s.TotalProducts)
}
