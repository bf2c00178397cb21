// Package server exposes the outliner over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tsawler/outliner/htmldoc"
	"github.com/tsawler/outliner/internal/metrics"
	"github.com/tsawler/outliner/layout"
	"github.com/tsawler/outliner/reader"
)

const shutdownTimeout = 10 * time.Second

// Options configure the HTTP server
type Options struct {
	MaxPages int

	// MaxFileBytes bounds request bodies. Zero means the reader default.
	MaxFileBytes int64

	Heading    layout.HeadingConfig
	Navigation htmldoc.NavigationExclusionMode

	// Timeout bounds one request's extraction; zero disables it
	Timeout time.Duration

	// TempDir receives spooled uploads. Empty means os.TempDir().
	TempDir string

	Metrics metrics.Metrics
	Logger  zerolog.Logger
}

// Server routes outline requests
type Server struct {
	opts   Options
	router *chi.Mux
}

// New builds the router
func New(opts Options) *Server {
	if opts.MaxFileBytes == 0 {
		opts.MaxFileBytes = reader.DefaultMaxFileBytes
	}

	s := &Server{opts: opts, router: chi.NewRouter()}

	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.recoverer)
	s.router.Use(s.logRequests)
	if opts.Metrics != nil {
		s.router.Use(s.observe)
	}

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/v1/outline", s.handleOutline)
	if opts.Metrics != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(opts.Metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}

	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.opts.Logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
