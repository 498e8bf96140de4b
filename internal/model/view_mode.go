package model

import (
	"fmt"
	"strings"
)

// ViewMode selects how the data explorer cross-references sales.
type ViewMode string

const (
	// ViewByCountry lists the series sold to a selected country.
	ViewByCountry ViewMode = "BY_COUNTRY"
	// ViewBySeries lists the countries a selected series was sold to.
	ViewBySeries ViewMode = "BY_SERIES"
	// ViewHistory lists individual sale records.
	ViewHistory ViewMode = "HISTORY"
)

// ParseViewMode accepts the canonical names as well as the short forms
// "country", "series" and "history".
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BY_COUNTRY", "COUNTRY":
		return ViewByCountry, nil
	case "BY_SERIES", "SERIES":
		return ViewBySeries, nil
	case "HISTORY":
		return ViewHistory, nil
	default:
		return "", fmt.Errorf("unknown view mode %q", s)
	}
}

// Label is the human-readable noun for the selection list of the mode.
func (m ViewMode) Label() string {
	switch m {
	case ViewByCountry:
		return "Country"
	case ViewBySeries:
		return "Series"
	default:
		return "History"
	}
}
