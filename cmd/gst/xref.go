package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/views"
	"github.com/spf13/cobra"
)

func xrefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xref <name>",
		Short: "Cross-reference series and countries",
		Long: `Cross-reference the sales history.

With --by country, lists the series sold to the named country.
With --by series, lists the countries the named series was exported to.
Without a name, lists the available choices for the mode.`,
		Example: `  gst xref --by country Japan
  gst xref --by series HB851
  gst xref --by series`,
		Args: cobra.MaximumNArgs(1),
		RunE: runXref,
	}

	cmd.Flags().String("by", "country", "cross-reference mode (country, series)")

	return cmd
}

func runXref(cmd *cobra.Command, args []string) error {
	by, _ := cmd.Flags().GetString("by")
	mode, err := model.ParseViewMode(by)
	if err != nil {
		return err
	}
	if mode == model.ViewHistory {
		return fmt.Errorf("--by must be country or series, use 'gst sales list' for the history")
	}

	return withStore(cmd, func(_ context.Context, _ config.Config, store *ledger.Store) error {
		out := cmd.OutOrStdout()
		sales := store.Sales()

		if len(args) == 0 {
			options := views.SelectionOptions(mode, sales, store.Products())
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Select a %s to view history", mode.Label()))) //nolint:forbidigo // User-facing output
			for _, o := range options {
				fmt.Fprintln(out, "  "+o) //nolint:forbidigo // User-facing output
			}
			return nil
		}

		selected := args[0]
		heading := "SOLD PRODUCTS"
		if mode == model.ViewBySeries {
			heading = "EXPORTED MARKETS"
		}

		results := views.CrossReference(sales, mode, selected)
		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Results for %s · %d Found", selected, len(results)))) //nolint:forbidigo // User-facing output
		fmt.Fprintln(out, heading)                                                                           //nolint:forbidigo // User-facing output
		for _, r := range results {
			fmt.Fprintln(out, "  "+r) //nolint:forbidigo // User-facing output
		}
		return nil
	})
}
