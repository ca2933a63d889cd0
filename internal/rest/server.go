// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.
//
// go-shameless is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package rest

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeremyhahn/go-shameless/pkg/health"
	"github.com/jeremyhahn/go-shameless/pkg/logging"
	"github.com/jeremyhahn/go-shameless/pkg/metrics"
	"github.com/jeremyhahn/go-shameless/pkg/ratelimit"
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
)

// Server represents the REST API server.
type Server struct {
	server    *http.Server
	handlers  *HandlerContext
	checker   *health.Checker
	limiter   *ratelimit.Limiter
	tlsConfig *tls.Config
	logger    *logging.Logger
	metrics   bool

	mu       sync.Mutex
	listener net.Listener
}

// Config holds the REST server configuration.
type Config struct {
	// Address is the host:port to listen on (default: 127.0.0.1:8339)
	Address string

	// Version is reported by GET /health
	Version string

	// TLSConfig enables HTTPS when set
	TLSConfig *tls.Config

	// Logger defaults to logging.DefaultLogger()
	Logger *logging.Logger

	// Defaults fill in split parameters omitted by clients
	// (default: threshold 2, shares 3, gf256)
	Defaults SplitDefaults

	// MaxBodyBytes bounds request bodies (default: 1 MiB)
	MaxBodyBytes int64

	// MetricsEnabled serves Prometheus metrics on MetricsPath
	MetricsEnabled bool
	MetricsPath    string

	// RateLimit throttles /api/v1 per client address (optional)
	RateLimit *ratelimit.Config

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer creates a new REST API server.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if cfg.Address == "" {
		cfg.Address = "127.0.0.1:8339"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.DefaultLogger()
	}
	if cfg.Defaults.Threshold == 0 {
		cfg.Defaults.Threshold = 2
	}
	if cfg.Defaults.Shares == 0 {
		cfg.Defaults.Shares = 3
	}
	if cfg.Defaults.Scheme == "" {
		cfg.Defaults.Scheme = shamir.DefaultScheme
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	if _, err := shamir.NewScheme(cfg.Defaults.Scheme); err != nil {
		return nil, err
	}

	checker := health.NewChecker()
	checker.RegisterCheck("dictionary", health.DictionaryCheck())
	for _, name := range shamir.SchemeNames() {
		scheme, err := shamir.NewScheme(name)
		if err != nil {
			return nil, err
		}
		checker.RegisterCheck("scheme:"+name, health.SchemeCheck(scheme))
	}

	handlers := NewHandlerContext(cfg.Version, cfg.Defaults, cfg.MaxBodyBytes, cfg.Logger)
	handlers.SetHealthChecker(checker)

	server := &Server{
		handlers:  handlers,
		checker:   checker,
		limiter:   ratelimit.New(cfg.RateLimit),
		tlsConfig: cfg.TLSConfig,
		logger:    cfg.Logger,
		metrics:   cfg.MetricsEnabled,
	}

	server.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      server.setupRouter(cfg.MetricsPath),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		TLSConfig:    cfg.TLSConfig,
	}

	return server, nil
}

// setupRouter configures the chi router with all routes and middleware.
func (s *Server) setupRouter(metricsPath string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(s.RecoveryMiddleware())
	r.Use(s.CorrelationMiddleware())
	r.Use(s.LoggingMiddleware())
	r.Use(metrics.HTTPMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/health", s.handlers.HealthHandler)
	r.Head("/health", s.handlers.HealthHandler)
	r.Get("/health/live", s.handlers.LivenessHandler)
	r.Get("/health/ready", s.handlers.ReadinessHandler)
	r.Get("/health/startup", s.handlers.StartupHandler)

	if s.metrics {
		r.Handle(metricsPath, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ratelimit.Middleware(s.limiter))
		r.Use(ContentTypeMiddleware)

		r.Post("/split", s.handlers.SplitHandler)
		r.Post("/combine", s.handlers.CombineHandler)
		r.Post("/shares/encode", s.handlers.EncodeShareHandler)
		r.Post("/shares/decode", s.handlers.DecodeShareHandler)
		r.Post("/mnemonic/generate", s.handlers.GenerateMnemonicHandler)
	})

	return r
}

// Handler returns the router serving all endpoints.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens on the configured address and serves until Stop is called.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	s.checker.MarkStarted()

	if s.tlsConfig != nil {
		s.logger.Info("Starting HTTPS server", "address", ln.Addr().String(), "metrics", s.metrics)
		err = s.server.ServeTLS(ln, "", "")
	} else {
		s.logger.Info("Starting HTTP server", "address", ln.Addr().String(), "metrics", s.metrics)
		err = s.server.Serve(ln)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Addr returns the address the server is listening on, or nil before
// Start has bound its listener.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop gracefully stops the REST API server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	s.checker.MarkNotStarted()
	s.limiter.Stop()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Errorf("Failed to shutdown server: %v", err)
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

// SetHealthChecker replaces the health checker behind the probe endpoints.
func (s *Server) SetHealthChecker(checker HealthChecker) {
	s.handlers.SetHealthChecker(checker)
}
