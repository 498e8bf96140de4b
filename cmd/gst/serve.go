package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/global-series-tracker/internal/api"
	"github.com/Veraticus/global-series-tracker/internal/certs"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker over HTTP",
		Long: `Serve the JSON API on server.addr. Destructive endpoints require
confirm=true. Prometheus metrics are exposed on /metrics.

With --tls the API is served over HTTPS using a self-signed certificate kept
in the config directory and regenerated when it expires.`,
		Example: `  gst serve
  gst serve --addr 0.0.0.0:8321
  gst serve --tls --host tracker.lan`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "listen address")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed certificate")
	cmd.Flags().StringSlice("host", nil, "extra host names or IPs for the certificate")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	useTLS, _ := cmd.Flags().GetBool("tls")
	extraHosts, _ := cmd.Flags().GetStringSlice("host")

	return withStore(cmd, func(ctx context.Context, cfg config.Config, store *ledger.Store) error {
		guard, err := newInsights(ctx, cfg.LLM)
		if err != nil {
			return err
		}

		opts := []api.Option{api.WithLogger(slog.Default())}
		if useTLS {
			cert, err := loadCertificate(extraHosts)
			if err != nil {
				return err
			}
			opts = append(opts, api.WithTLS(cert))
		}

		server := api.NewServer(store, guard, opts...)
		return server.ListenAndServe(ctx, cfg.Server.Addr)
	})
}

func loadCertificate(extraHosts []string) (tls.Certificate, error) {
	dir, err := config.DefaultConfigDir()
	if err != nil {
		return tls.Certificate{}, err
	}
	hosts := append([]string{"localhost", "127.0.0.1", "::1"}, extraHosts...)
	cert, err := certs.NewStore(filepath.Join(dir, "certs"), certs.WithHosts(hosts...), certs.WithLogger(slog.Default())).Certificate()
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to load API certificate: %w", err)
	}
	return cert, nil
}
