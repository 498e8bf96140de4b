package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/common"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "gst",
		Short: "🌍 Global series sales tracker",
		Long: `gst: record which product series were sold to which countries and customers,
cross-reference the history, and ask an AI model for a market report.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/gst/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (console, json)")
	rootCmd.PersistentFlags().String("db", "", "database file (default: $HOME/.local/share/gst/gst.db)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "keep data in memory only")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("database.ephemeral", rootCmd.PersistentFlags().Lookup("ephemeral"))

	rootCmd.AddCommand(
		recordCmd(), salesCmd(), productsCmd(), countriesCmd(), xrefCmd(),
		analyzeCmd(), exportCmd(), authCmd(), exploreCmd(), serveCmd(),
		migrateCmd(), versionCmd(),
	)
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, stop := interrupts.HandleInterrupts(context.Background(), "Every sale recorded so far has been saved.")

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil && !interrupts.WasInterrupted() {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error())) //nolint:forbidigo // User-facing error
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.Init(viper.GetViper(), cfgFile); err != nil {
		return err
	}
	return common.SetupLogger(cmd.ErrOrStderr(), viper.GetString("logging.level"), viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gst %s\n", version) //nolint:forbidigo // User-facing output
		},
	}
}
