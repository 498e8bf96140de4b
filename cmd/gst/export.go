package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/export"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/service"
	"github.com/Veraticus/global-series-tracker/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the sales report",
		Long: `Export the sales report: the full history, sales per country, sales per
customer and the cross-reference of series and countries.`,
	}

	cmd.AddCommand(exportXLSXCmd())
	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportXLSXCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "xlsx <file>",
		Short:   "Export the report to an Excel workbook",
		Example: `  gst export xlsx sales.xlsx`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := export.NewXLSXWriter(args[0],
				export.WithProgress(cmd.ErrOrStderr()),
				export.WithLogger(slog.Default()),
			)
			return runExport(cmd, writer, fmt.Sprintf("Report saved to %s", args[0]))
		},
	}
}

func exportSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Export the report to Google Sheets",
		Long: `Export the report to Google Sheets. Authenticate first with
'gst auth sheets', or configure a service account with
sheets.service_account_path.

Each report table is written to its own tab. Without sheets.spreadsheet_id
a new spreadsheet is created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadSavedRefreshToken(viper.GetViper())

			sheetsCfg, err := config.LoadSheetsConfig(viper.GetViper())
			if err != nil {
				return err
			}

			writer, err := sheets.NewWriter(cmd.Context(), *sheetsCfg, slog.Default())
			if err != nil {
				return err
			}
			writer.SetProgress(cmd.ErrOrStderr())

			return runExport(cmd, writer, "Report exported to Google Sheets")
		},
	}
}

func runExport(cmd *cobra.Command, writer service.ReportWriter, done string) error {
	return withStore(cmd, func(ctx context.Context, _ config.Config, store *ledger.Store) error {
		if err := writer.Write(ctx, store.Sales(), store.Products()); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(done)) //nolint:forbidigo // User-facing output
		return nil
	})
}

// loadSavedRefreshToken fills sheets.refresh_token from the token saved by
// 'gst auth sheets' when OAuth2 is in use and no token is configured.
func loadSavedRefreshToken(v *viper.Viper) {
	if v.GetString("sheets.refresh_token") != "" || v.GetString("sheets.service_account_path") != "" || os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN") != "" {
		return
	}
	token, err := sheets.LoadToken(config.SheetsTokenFile(v))
	if err != nil {
		slog.Debug("No saved sheets token", "error", err)
		return
	}
	if token.RefreshToken != "" {
		v.Set("sheets.refresh_token", token.RefreshToken)
	}
}
