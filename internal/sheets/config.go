// Package sheets exports sales reports to Google Sheets.
package sheets

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultSpreadsheetName is used when a new spreadsheet has to be created.
const DefaultSpreadsheetName = "Global Series Sales"

// Authentication errors returned by Config.Validate.
var (
	ErrNoAuth          = errors.New("no authentication method configured")
	ErrConflictingAuth = errors.New("both OAuth2 and service account configured")
)

// Config holds the Google Sheets writer settings. Exactly one of the OAuth2
// triple or ServiceAccountPath must be set.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string        `validate:"omitempty,timezone"`
	BatchSize          int           `validate:"gt=0,lte=10000"`
	RetryAttempts      int           `validate:"gte=0"`
	RetryDelay         time.Duration `validate:"gte=0"`
	EnableFormatting   bool
}

var validate = validator.New()

// DefaultConfig returns the writer defaults without credentials.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		TimeZone:         "UTC",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		EnableFormatting: true,
	}
}

// envFallbacks maps fields to the GOOGLE_SHEETS_* variables that fill them.
func (c *Config) envFallbacks() map[string]*string {
	return map[string]*string{
		"GOOGLE_SHEETS_CLIENT_ID":            &c.ClientID,
		"GOOGLE_SHEETS_CLIENT_SECRET":        &c.ClientSecret,
		"GOOGLE_SHEETS_REFRESH_TOKEN":        &c.RefreshToken,
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH": &c.ServiceAccountPath,
		"GOOGLE_SHEETS_SPREADSHEET_ID":       &c.SpreadsheetID,
		"GOOGLE_SHEETS_SPREADSHEET_NAME":     &c.SpreadsheetName,
	}
}

// LoadFromEnv fills empty fields from the environment. Values already set
// are kept.
func (c *Config) LoadFromEnv() {
	for env, field := range c.envFallbacks() {
		if *field == "" {
			*field = os.Getenv(env)
		}
	}
	if c.SpreadsheetName == "" {
		c.SpreadsheetName = DefaultSpreadsheetName
	}
}

func (c *Config) hasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Validate checks the credentials choice and the numeric limits.
func (c *Config) Validate() error {
	switch oauth, sa := c.hasOAuth(), c.ServiceAccountPath != ""; {
	case !oauth && !sa:
		return ErrNoAuth
	case oauth && sa:
		return ErrConflictingAuth
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid sheets settings: %w", err)
	}
	return nil
}
