package config

import (
	"fmt"
	"path/filepath"

	"github.com/Veraticus/global-series-tracker/internal/common"
	"github.com/Veraticus/global-series-tracker/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration. Values from v
// (config file or GST_SHEETS_* env vars) win over the GOOGLE_SHEETS_*
// environment variables, which win over defaults.
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()
	cfg.SpreadsheetName = ""

	cfg.ServiceAccountPath = ExpandPath(v.GetString("sheets.service_account_path"))
	cfg.ClientID = v.GetString("sheets.client_id")
	cfg.ClientSecret = v.GetString("sheets.client_secret")
	cfg.RefreshToken = v.GetString("sheets.refresh_token")
	cfg.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	cfg.SpreadsheetName = v.GetString("sheets.spreadsheet_name")
	if tz := v.GetString("sheets.time_zone"); tz != "" {
		cfg.TimeZone = tz
	}

	cfg.LoadFromEnv()
	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: google sheets: %w", common.ErrMissingConfig, err)
	}

	return &cfg, nil
}

// SheetsTokenFile returns where the interactive OAuth2 token is stored.
func SheetsTokenFile(v *viper.Viper) string {
	if p := v.GetString("sheets.token_file"); p != "" {
		return ExpandPath(p)
	}
	dir, err := DefaultConfigDir()
	if err != nil {
		return "sheets-token.json"
	}
	return filepath.Join(dir, "sheets-token.json")
}
