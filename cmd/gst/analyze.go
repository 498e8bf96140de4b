package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/analysis"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Generate an AI market analysis report",
		Long: `Summarize the recorded sales and ask the configured AI provider for a
short market analysis: an executive summary, the top market and customers,
and a strategic recommendation.

The provider key is read from llm.api_key, GST_LLM_API_KEY, API_KEY or
GEMINI_API_KEY.`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}

	cmd.Flags().Bool("text-only", false, "print only the analysis text")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	textOnly, _ := cmd.Flags().GetBool("text-only")

	return withStore(cmd, func(ctx context.Context, cfg config.Config, store *ledger.Store) error {
		guard, err := newInsights(ctx, cfg.LLM)
		if err != nil {
			return err
		}

		sales := store.Sales()
		products := store.Products()

		slog.Debug("Requesting analysis", "sales", len(sales), "products", len(products))
		result, err := guard.TryAnalyze(ctx, sales, products)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if textOnly {
			fmt.Fprintln(out, result.Text) //nolint:forbidigo // User-facing output
			return nil
		}

		summary := analysis.BuildSummary(sales, products)
		fmt.Fprintln(out, analysis.NewCLIFormatter().FormatReport(summary, result, time.Now())) //nolint:forbidigo // User-facing output
		return nil
	})
}
