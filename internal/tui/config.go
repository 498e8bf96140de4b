package tui

import (
	"time"

	"github.com/Veraticus/global-series-tracker/internal/analysis"
	"github.com/Veraticus/global-series-tracker/internal/service"
	"github.com/Veraticus/global-series-tracker/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Store    service.Ledger
	Insights *analysis.Guard
	Now      func() time.Time
	Panel    Panel
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Now:      time.Now,
		Panel:    PanelRecord,
		Width:    80,
		Height:   24,
		ShowHelp: true,
	}
}

// WithStore sets the record store.
func WithStore(store service.Ledger) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithInsights sets the guarded analysis requester. Without it the
// insights panel reports that no API key is configured.
func WithInsights(guard *analysis.Guard) Option {
	return func(c *Config) {
		c.Insights = guard
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock replaces the time source used for notifications.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithPanel selects the panel shown first.
func WithPanel(p Panel) Option {
	return func(c *Config) {
		c.Panel = p
	}
}
