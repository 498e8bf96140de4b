package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/global-series-tracker/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local/share/gst/gst.db"), cfg.Database.Path)
	assert.False(t, cfg.Database.Ephemeral)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.APIKey, "a missing key is a valid state")
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_APIKeyFallbacks(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-env")

	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, "gemini-env", cfg.LLM.APIKey)

	v := newViper()
	v.Set("llm.api_key", "configured")
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, "configured", cfg.LLM.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr error
	}{
		{name: "provider", key: "llm.provider", value: "claudecode", wantErr: common.ErrInvalidConfig},
		{name: "temperature", key: "llm.temperature", value: 3.5, wantErr: common.ErrInvalidConfig},
		{name: "max tokens", key: "llm.max_tokens", value: -1, wantErr: common.ErrInvalidConfig},
		{name: "log level", key: "logging.level", value: "loud", wantErr: common.ErrInvalidConfig},
		{name: "server addr", key: "server.addr", value: "", wantErr: common.ErrMissingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: ~/sales/gst.db
llm:
  provider: openai
  api_key: sk-test
  max_tokens: 512
server:
  addr: 0.0.0.0:9000
`), 0o600))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "sales/gst.db"), cfg.Database.Path)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 512, cfg.LLM.LLMClientConfig().MaxTokens)
	assert.Equal(t, "sk-test", cfg.LLM.LLMClientConfig().APIKey)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
}

func TestLoadSheetsConfig(t *testing.T) {
	for _, env := range []string{
		"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(env, "")
	}

	t.Run("missing credentials", func(t *testing.T) {
		_, err := LoadSheetsConfig(viper.New())
		require.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("service account from viper", func(t *testing.T) {
		v := viper.New()
		v.Set("sheets.service_account_path", "/keys/sa.json")
		v.Set("sheets.spreadsheet_id", "abc")

		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "abc", cfg.SpreadsheetID)
		assert.NotEmpty(t, cfg.SpreadsheetName)
	})

	t.Run("oauth from env", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "id")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "refresh")

		cfg, err := LoadSheetsConfig(viper.New())
		require.NoError(t, err)
		assert.Equal(t, "id", cfg.ClientID)
	})
}
