package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/tui"
	"github.com/Veraticus/global-series-tracker/internal/workflow"
	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the product series list",
	}

	cmd.AddCommand(productsImportCmd())
	cmd.AddCommand(productsListCmd())
	cmd.AddCommand(productsClearCmd())

	return cmd
}

func productsImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [names...]",
		Short: "Import product series names",
		Long: `Import product series names. Names may be separated by newlines, commas,
semicolons or pipes, so a column pasted from a spreadsheet works as is.
Names already in the list are skipped and the list stays sorted.

Names are read from the arguments, from --file, or from stdin when neither
is given.`,
		Example: `  gst products import HB851 HB852
  gst products import --file products.txt
  pbpaste | gst products import`,
		RunE: runProductsImport,
	}

	cmd.Flags().StringP("file", "f", "", "read names from a file")

	return cmd
}

func runProductsImport(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	text, err := importText(cmd, file, args)
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, _ config.Config, store *ledger.Store) error {
		out := cmd.OutOrStdout()

		n, err := workflow.ImportText(ctx, store, text)
		if err != nil && !errors.Is(err, ledger.ErrPersist) {
			return err
		}
		if n == 0 {
			fmt.Fprintln(out, cli.FormatInfo("No product names found, nothing imported")) //nolint:forbidigo // User-facing output
			return nil
		}

		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d names, %d products in list", n, len(store.Products())))) //nolint:forbidigo // User-facing output
		printPersistWarning(cmd, err)
		return nil
	})
}

func importText(cmd *cobra.Command, file string, args []string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, "\n"), nil
	case file != "":
		data, err := os.ReadFile(file) //nolint:gosec // User-provided path
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

func productsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List product series in alphabetical order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(_ context.Context, _ config.Config, store *ledger.Store) error {
				out := cmd.OutOrStdout()
				products := store.Products()

				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Current Products (%d)", len(products)))) //nolint:forbidigo // User-facing output
				if len(products) == 0 {
					fmt.Fprintln(out, "No products imported yet.") //nolint:forbidigo // User-facing output
					return nil
				}
				for _, p := range products {
					fmt.Fprintln(out, "  "+p) //nolint:forbidigo // User-facing output
				}
				return nil
			})
		},
	}
}

func productsClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every product series",
		Long: `Delete every product series from the list. Recorded sales are kept and
still reference their series by name.`,
		Args: cobra.NoArgs,
		RunE: runProductsClear,
	}

	cmd.Flags().Bool("force", false, "skip the confirmation prompt")

	return cmd
}

func runProductsClear(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")

	return withStore(cmd, func(ctx context.Context, _ config.Config, store *ledger.Store) error {
		out := cmd.OutOrStdout()

		ok, err := confirm(cmd, tui.MsgConfirmClear, force)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.FormatInfo("Clear canceled")) //nolint:forbidigo // User-facing output
			return nil
		}

		err = store.ClearProducts(ctx)
		if err != nil && !errors.Is(err, ledger.ErrPersist) {
			return err
		}

		fmt.Fprintln(out, cli.FormatSuccess("All products deleted")) //nolint:forbidigo // User-facing output
		printPersistWarning(cmd, err)
		return nil
	})
}
