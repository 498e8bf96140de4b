package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/tui"
	"github.com/Veraticus/global-series-tracker/internal/views"
	"github.com/spf13/cobra"
)

const dateLayout = "Jan 2, 2006"

func salesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "List, search and delete recorded sales",
	}

	cmd.AddCommand(salesListCmd())
	cmd.AddCommand(salesSearchCmd())
	cmd.AddCommand(salesDeleteCmd())

	return cmd
}

func salesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sales, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withStore(cmd, func(_ context.Context, _ config.Config, store *ledger.Store) error {
				sales := store.Sales()
				if limit > 0 && len(sales) > limit {
					sales = sales[:limit]
				}
				printSales(cmd, sales)
				return nil
			})
		},
	}

	cmd.Flags().Int("limit", 0, "show at most this many records (0 for all)")

	return cmd
}

func salesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search sales by series, country or customer",
		Long: `Search the sales history. The term is matched case-insensitively against
the series name, the country and the customer name.`,
		Example: `  gst sales search japan
  gst sales search "llc tech"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(_ context.Context, _ config.Config, store *ledger.Store) error {
				printSales(cmd, views.SearchHistory(store.Sales(), args[0]))
				return nil
			})
		},
	}
}

func salesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded sale",
		Args:  cobra.ExactArgs(1),
		RunE:  runSalesDelete,
	}

	cmd.Flags().Bool("force", false, "skip the confirmation prompt")

	return cmd
}

func runSalesDelete(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	id := args[0]

	return withStore(cmd, func(ctx context.Context, _ config.Config, store *ledger.Store) error {
		out := cmd.OutOrStdout()

		ok, err := confirm(cmd, tui.MsgConfirmDelete, force)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.FormatInfo("Delete canceled")) //nolint:forbidigo // User-facing output
			return nil
		}

		deleted, err := store.DeleteSale(ctx, id)
		if err != nil && !errors.Is(err, ledger.ErrPersist) {
			return err
		}
		if !deleted {
			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("No sale with id %s, nothing deleted", id))) //nolint:forbidigo // User-facing output
			return nil
		}

		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted sale %s", id))) //nolint:forbidigo // User-facing output
		printPersistWarning(cmd, err)
		return nil
	})
}

func printSales(cmd *cobra.Command, sales []model.SaleRecord) {
	out := cmd.OutOrStdout()
	if len(sales) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No records found")) //nolint:forbidigo // User-facing output
		return
	}

	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			s.Time().Format(dateLayout),
			s.SeriesName,
			s.Country,
			s.CustomerName,
			s.ID,
		})
	}

	fmt.Fprintln(out, cli.RenderTable([]string{"Date", "Series", "Country", "Customer", "ID"}, rows)) //nolint:forbidigo // User-facing output
	fmt.Fprintf(out, "%d records found\n", len(sales))                                                //nolint:forbidigo // User-facing output
}
