package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/views"
	"github.com/spf13/cobra"
)

func countriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List countries with recorded sales",
		Long: `List every country that has at least one recorded sale, ranked by the
number of sales. With --customers the ranking is by customer instead.`,
		Args: cobra.NoArgs,
		RunE: runCountries,
	}

	cmd.Flags().Bool("customers", false, "rank customers instead of countries")

	return cmd
}

func runCountries(cmd *cobra.Command, _ []string) error {
	byCustomer, _ := cmd.Flags().GetBool("customers")

	return withStore(cmd, func(_ context.Context, _ config.Config, store *ledger.Store) error {
		out := cmd.OutOrStdout()
		sales := store.Sales()

		label := "Country"
		counts := views.CountByCountry(sales)
		if byCustomer {
			label = "Customer"
			counts = views.CountByCustomer(sales)
		}

		ranked := views.Ranked(counts)
		if len(ranked) == 0 {
			fmt.Fprintln(out, cli.FormatInfo("No records found")) //nolint:forbidigo // User-facing output
			return nil
		}

		rows := make([][]string, 0, len(ranked))
		for _, t := range ranked {
			rows = append(rows, []string{t.Name, strconv.Itoa(t.Count)})
		}
		fmt.Fprintln(out, cli.RenderTable([]string{label, "Sales"}, rows)) //nolint:forbidigo // User-facing output
		return nil
	})
}
