package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/global-series-tracker/internal/analysis"
	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/llm"
	"github.com/Veraticus/global-series-tracker/internal/service"
	"github.com/Veraticus/global-series-tracker/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig returns the typed configuration for the current command.
func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

// openStore opens the configured storage, runs migrations and loads the
// ledger. The returned cleanup closes the storage.
func openStore(ctx context.Context, cfg config.Config) (*ledger.Store, func(), error) {
	var kv service.KeyValueStore
	if cfg.Database.Ephemeral {
		kv = storage.NewMemoryStorage()
	} else {
		db, err := storage.NewSQLiteStorage(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		kv = db
	}

	cleanup := func() {
		if err := kv.Close(); err != nil {
			slog.Warn("failed to close storage", "error", err)
		}
	}

	store, err := ledger.Open(ctx, kv, ledger.WithLogger(slog.Default()))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}

// withStore loads config and the ledger, runs fn and closes the storage.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, store *ledger.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, cfg, store)
}

// newInsights builds the guarded analysis requester. Without an API key the
// requester answers every request with the missing key message.
func newInsights(ctx context.Context, cfg config.LLMConfig) (*analysis.Guard, error) {
	var client llm.Client
	if cfg.APIKey != "" {
		c, err := llm.NewClient(ctx, cfg.LLMClientConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = c
	}

	requester, err := analysis.NewRequester(client, slog.Default())
	if err != nil {
		return nil, err
	}
	return analysis.NewGuard(requester), nil
}

// confirm asks question unless force is set.
func confirm(cmd *cobra.Command, question string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	return prompter.Confirm(cmd.Context(), question)
}

// printPersistWarning reports a write that failed after memory was updated.
func printPersistWarning(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf("Change kept in memory but could not be saved: %v", err))) //nolint:forbidigo // User-facing output
}
