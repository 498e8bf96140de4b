package main

import (
	"context"

	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/tui"
	"github.com/Veraticus/global-series-tracker/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "explore",
		Aliases: []string{"ui"},
		Short:   "Open the interactive tracker",
		Long: `Open the full-screen tracker with four panels: Record Sale, Data Explorer,
AI Insights and Manage Products. Press tab to switch panels and ? for help.`,
		Args: cobra.NoArgs,
		RunE: runExplore,
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin)")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runExplore(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, cfg config.Config, store *ledger.Store) error {
		guard, err := newInsights(ctx, cfg.LLM)
		if err != nil {
			return err
		}

		return tui.Run(ctx,
			tui.WithStore(store),
			tui.WithInsights(guard),
			tui.WithTheme(themes.ByName(viper.GetString("ui.theme"))),
		)
	})
}
