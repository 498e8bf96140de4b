package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Long: `Brings the database file to the latest schema version. Every other
command migrates on open, so this is mainly for --status and for preparing
a database ahead of time.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "print the schema version and stored collections without migrating")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Ephemeral {
		return fmt.Errorf("nothing to migrate: storage is ephemeral")
	}

	slog.Debug("Opening database", "path", cfg.Database.Path, "status_only", status)

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if status {
		return printSchemaStatus(cmd, store, current)
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", store.Path(), err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database at schema version %d", storage.ExpectedSchemaVersion))) //nolint:forbidigo // User-facing output
	return nil
}

func printSchemaStatus(cmd *cobra.Command, store *storage.SQLiteStorage, current int) error {
	rows := [][]string{
		{"Database", store.Path()},
		{"Current version", strconv.Itoa(current)},
		{"Latest version", strconv.Itoa(storage.ExpectedSchemaVersion)},
	}
	if current > 0 {
		keys, err := store.Keys(cmd.Context())
		if err != nil {
			return err
		}
		rows = append(rows, []string{"Collections", strings.Join(keys, ", ")})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Database Status"))                  //nolint:forbidigo // User-facing output
	fmt.Fprintln(out, cli.RenderTable([]string{"Setting", "Value"}, rows)) //nolint:forbidigo // User-facing output
	if current < storage.ExpectedSchemaVersion {
		fmt.Fprintln(out, cli.FormatWarning("Migrations pending, run 'gst migrate'")) //nolint:forbidigo // User-facing output
	}
	return nil
}
