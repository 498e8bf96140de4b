package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/global-series-tracker/internal/common"
	"github.com/Veraticus/global-series-tracker/internal/llm"
	"github.com/spf13/viper"
)

// Defaults for the configuration keys.
const (
	DefaultDatabasePath = "$HOME/.local/share/gst/gst.db"
	DefaultServerAddr   = "127.0.0.1:8321"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// Config is the typed application configuration.
type Config struct {
	Database DatabaseConfig
	LLM      LLMConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// DatabaseConfig selects the key-value storage.
type DatabaseConfig struct {
	Path      string
	Ephemeral bool
}

// LLMConfig configures the AI insights provider. An empty APIKey is valid
// and disables insights.
type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("database.ephemeral", false)
	v.SetDefault("llm.provider", llm.ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Load reads the typed configuration from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Database: DatabaseConfig{
			Path:      ExpandPath(v.GetString("database.path")),
			Ephemeral: v.GetBool("database.ephemeral"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			APIKey:      v.GetString("llm.api_key"),
			Model:       v.GetString("llm.model"),
			BaseURL:     v.GetString("llm.base_url"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
		},
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = apiKeyFromEnv()
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = ExpandPath(DefaultDatabasePath)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case "", llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic:
	default:
		return fmt.Errorf("%w: unsupported llm.provider %q", common.ErrInvalidConfig, c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("%w: llm.temperature must be between 0 and 2", common.ErrInvalidConfig)
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("%w: llm.max_tokens cannot be negative", common.ErrInvalidConfig)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr", common.ErrMissingConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// LLMClientConfig converts the insights settings for llm.NewClient.
func (c LLMConfig) LLMClientConfig() llm.Config {
	return llm.Config{
		Provider:    c.Provider,
		APIKey:      c.APIKey,
		Model:       c.Model,
		BaseURL:     c.BaseURL,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
}

// apiKeyFromEnv reads the conventional key variables used by the Gemini
// tooling.
func apiKeyFromEnv() string {
	for _, name := range []string{"API_KEY", "GEMINI_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
