// Package webhook accepts Telegram update callbacks over HTTP and feeds them
// to the processing pipeline.
package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"spotlink/internal/metrics"
	"spotlink/internal/pipeline"
)

// Config configures the webhook server. A nil Pipeline marks the bot token
// as unconfigured; every update request then fails with a server error.
type Config struct {
	Port     int
	Path     string // webhook URL path (default: /webhook)
	Pipeline *pipeline.Pipeline
	Registry *metrics.Registry
	Logger   *slog.Logger
}

// Server is the HTTP entry point of the responder.
type Server struct {
	port     int
	path     string
	pipeline *pipeline.Pipeline
	registry *metrics.Registry
	logger   *slog.Logger
	server   *http.Server
}

// NewServer creates the webhook server.
func NewServer(cfg Config) *Server {
	if cfg.Path == "" {
		cfg.Path = "/webhook"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Registry == nil {
		cfg.Registry = metrics.Default
	}
	return &Server{
		port:     cfg.Port,
		path:     cfg.Path,
		pipeline: cfg.Pipeline,
		registry: cfg.Registry,
		logger:   cfg.Logger,
	}
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.handleUpdate)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", s.registry.Handler())

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("webhook server starting", "port", s.port, "path", s.path)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("webhook server: %w", err)
	}
}
