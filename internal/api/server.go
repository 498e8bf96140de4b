// Package api serves the record store over a small JSON HTTP API.
package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/analysis"
	"github.com/Veraticus/global-series-tracker/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Server exposes a ledger over HTTP.
type Server struct {
	store    service.Ledger
	insights *analysis.Guard
	logger   *slog.Logger
	validate *validator.Validate
	metrics  *Metrics
	registry *prometheus.Registry
	tls      *tls.Config
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithClock replaces the time source used for notifications.
func WithClock(fn func() time.Time) Option {
	return func(s *Server) { s.now = fn }
}

// WithTLS serves HTTPS with cert.
func WithTLS(cert tls.Certificate) Option {
	return func(s *Server) {
		s.tls = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}
}

// NewServer creates a server over store. insights may be nil, in which case
// the insights endpoint answers with the missing key message.
func NewServer(store service.Ledger, insights *analysis.Guard, opts ...Option) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		store:    store,
		insights: insights,
		logger:   slog.Default(),
		validate: newValidator(),
		metrics:  NewMetrics(registry),
		registry: registry,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "api"))
	return s
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/sales", s.listSales)
		r.Post("/sales", s.recordSale)
		r.Delete("/sales/{id}", s.deleteSale)

		r.Get("/products", s.listProducts)
		r.Post("/products/import", s.importProducts)
		r.Delete("/products", s.clearProducts)

		r.Get("/countries", s.listCountries)
		r.Get("/xref", s.crossReference)
		r.Post("/insights", s.generateInsights)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig:         s.tls,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr, "tls", s.tls != nil)
		if s.tls != nil {
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown failed: %w", err)
		}
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.metrics.observeRequest(r.Method, route, ww.Status(), elapsed)

		s.logger.InfoContext(r.Context(), "request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", elapsed),
		)
	})
}
