// Package server runs the development server: it serves the output
// directory over HTTP, watches schema sources, and regenerates output when
// they change.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/panschema/config"
)

// RegenerateFunc converts every watched source into the output directory.
type RegenerateFunc func(ctx context.Context) error

// Server is the development server.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	regenerate RegenerateFunc
	metrics    *metrics
	registry   *prometheus.Registry
}

// New creates a server. The regenerate callback is invoked once at
// startup and again after every debounced batch of source changes.
func New(cfg *config.Config, logger *slog.Logger, regenerate RegenerateFunc) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		cfg:        cfg,
		logger:     logger,
		regenerate: regenerate,
		metrics:    newMetrics(registry),
		registry:   registry,
	}
}

// Run generates output, starts watching when enabled, and serves until the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.runRegenerate(ctx); err != nil {
		return err
	}

	if s.cfg.Watch.Enabled {
		changes, stop, err := watchGlobs(s.cfg.Watch.Globs, s.logger)
		if err != nil {
			return err
		}
		defer stop()
		go s.regenerateLoop(ctx, coalesce(ctx, changes, s.cfg.Watch.Debounce))
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Output.Dir)))
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving output", "addr", s.cfg.Server.Addr, "dir", s.cfg.Output.Dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// regenerateLoop reacts to debounced change notifications.
func (s *Server) regenerateLoop(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := s.runRegenerate(ctx); err != nil {
				s.logger.Error("regeneration failed", "error", err)
			}
		}
	}
}

func (s *Server) runRegenerate(ctx context.Context) error {
	start := time.Now()
	err := s.regenerate(ctx)
	s.metrics.regenerationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.regenerationErrors.Inc()
		return err
	}
	s.metrics.regenerations.Inc()
	s.logger.Info("output regenerated", "elapsed", time.Since(start))
	return nil
}
