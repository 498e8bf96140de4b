package main

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/common"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Connect gst to external services",
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Runs the Google OAuth2 consent flow once and stores the refresh
token used by 'gst export sheets'. A saved token is reused unless --reauth
is given.`,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	cmd.Flags().String("callback", sheets.DefaultCallbackAddr, "address for the OAuth2 callback server")
	cmd.Flags().Duration("timeout", 5*time.Minute, "how long to wait for the browser flow")
	cmd.Flags().Bool("reauth", false, "ignore a saved token and authenticate again")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	flagID, _ := cmd.Flags().GetString("client-id")
	flagSecret, _ := cmd.Flags().GetString("client-secret")
	callback, _ := cmd.Flags().GetString("callback")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	reauth, _ := cmd.Flags().GetBool("reauth")

	oauthCfg := sheets.OAuth2Config{
		ClientID:     cmp.Or(flagID, viper.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID")),
		ClientSecret: cmp.Or(flagSecret, viper.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")),
		TokenFile:    config.SheetsTokenFile(viper.GetViper()),
		CallbackAddr: callback,
		Timeout:      timeout,
		Prompt:       cmd.ErrOrStderr(),
	}
	if oauthCfg.ClientID == "" || oauthCfg.ClientSecret == "" {
		return fmt.Errorf("%w: set sheets.client_id and sheets.client_secret or pass --client-id and --client-secret",
			common.ErrMissingConfig)
	}

	slog.Debug("Authenticating Google Sheets", "token_file", oauthCfg.TokenFile, "reauth", reauth)

	authenticate := sheets.GetOrCreateToken
	if reauth {
		authenticate = sheets.AuthenticateOAuth2Interactive
	}
	if _, err := authenticate(cmd.Context(), oauthCfg); err != nil {
		return fmt.Errorf("google sheets authentication: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess("Google Sheets connected"))          //nolint:forbidigo // User-facing output
	fmt.Fprintln(out, "Run 'gst export sheets' to export the sales report.") //nolint:forbidigo // User-facing output
	return nil
}
