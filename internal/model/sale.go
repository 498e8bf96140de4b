// Package model defines the core domain types for the series tracker.
package model

import "time"

// UnknownCustomer is the customer name given to records stored before
// customers were tracked.
const UnknownCustomer = "Unknown"

// SaleRecord represents one logged sale of a product series to a market.
type SaleRecord struct {
	ID           string `json:"id"`
	SeriesName   string `json:"seriesName"`
	Country      string `json:"country"`
	CustomerName string `json:"customerName"`
	Timestamp    int64  `json:"timestamp"` // milliseconds since epoch
}

// Time returns the creation time of the record.
func (s SaleRecord) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Summary renders the record as "series -> country (customer)".
func (s SaleRecord) Summary() string {
	return s.SeriesName + " -> " + s.Country + " (" + s.CustomerName + ")"
}
