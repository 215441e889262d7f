// Package httpapi serves bundles and runtime identities over HTTP.
//
// Routes:
//
//	GET /v2/polyfill.js, /v2/polyfill.min.js   assembled bundle
//	GET /v2/normalizeUa?ua=...                 canonical identity header
//	GET /v1/...                                permanent redirect to /v2
//	GET /metrics                               Prometheus exposition
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.trai.ch/polyfill/internal/app"
	"go.trai.ch/polyfill/internal/core/domain"
	"go.trai.ch/polyfill/internal/core/ports"
	"go.trai.ch/zerr"
)

const shutdownTimeout = 10 * time.Second

// Service is the pipeline the handlers drive.
type Service interface {
	Ready() bool
	Bundle(ctx context.Context, req domain.Request) (*app.Artifact, error)
	Normalize(raw string) string
}

// Exporter records serving metrics and exposes them over HTTP.
type Exporter interface {
	ports.Metrics
	Handler() http.Handler
}

// Server is the HTTP front of the polyfill pipeline.
type Server struct {
	svc     Service
	logger  ports.Logger
	metrics Exporter
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records every served bundle and mounts /metrics.
func WithMetrics(m Exporter) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a Server for svc.
func New(svc Service, log ports.Logger, opts ...Option) *Server {
	s := &Server{svc: svc, logger: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/normalizeUa", s.handleNormalize)
	mux.HandleFunc("GET /v2/{file}", s.handlePolyfill)
	mux.HandleFunc("GET /v1/{rest...}", s.handleV1)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on " + addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- zerr.With(zerr.Wrap(err, "http server failed"), "addr", addr)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, "http server shutdown failed")
	}
	return <-errCh
}
