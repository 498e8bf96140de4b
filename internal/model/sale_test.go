package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleRecord_Summary(t *testing.T) {
	rec := SaleRecord{SeriesName: "HB851", Country: "Japan", CustomerName: "Acme"}
	assert.Equal(t, "HB851 -> Japan (Acme)", rec.Summary())
}

func TestSaleRecord_Time(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := SaleRecord{Timestamp: ts.UnixMilli()}
	assert.True(t, rec.Time().Equal(ts))
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ViewMode
		wantErr bool
	}{
		{input: "BY_COUNTRY", want: ViewByCountry},
		{input: "country", want: ViewByCountry},
		{input: " series ", want: ViewBySeries},
		{input: "history", want: ViewHistory},
		{input: "vendor", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseViewMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsCommonCountry(t *testing.T) {
	assert.True(t, IsCommonCountry("Japan"))
	assert.False(t, IsCommonCountry("japan"))
	assert.False(t, IsCommonCountry("Atlantis"))
	assert.Len(t, CommonCountries, 20)
}
