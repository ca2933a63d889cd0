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

// Package unix serves an HTTP handler on a Unix domain socket for local
// clients that should not reach the API over TCP.
package unix

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jeremyhahn/go-shameless/pkg/logging"
)

// DefaultSocketMode restricts the socket to its owner and group
const DefaultSocketMode os.FileMode = 0660

// Config holds the Unix socket server configuration
type Config struct {
	// SocketPath is the path to the Unix socket file (required)
	SocketPath string

	// Handler serves requests arriving on the socket (required)
	Handler http.Handler

	// SocketMode is the file mode for the socket (default: 0660)
	SocketMode os.FileMode

	// Logger defaults to logging.DefaultLogger()
	Logger *logging.Logger

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server represents the Unix domain socket server
type Server struct {
	config *Config
	server *http.Server
	logger *logging.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a new Unix socket server
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.SocketPath == "" {
		return nil, fmt.Errorf("socket path is required")
	}
	if cfg.Handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	if cfg.SocketMode == 0 {
		cfg.SocketMode = DefaultSocketMode
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.DefaultLogger()
	}

	return &Server{
		config: cfg,
		logger: cfg.Logger,
		server: &http.Server{
			Handler:           cfg.Handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Start creates the socket and serves until Stop is called. A stale
// socket file left by a previous run is replaced.
func (s *Server) Start() error {
	socketDir := filepath.Dir(s.config.SocketPath)
	if err := os.MkdirAll(socketDir, 0750); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	if err := os.Remove(s.config.SocketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", s.config.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to create Unix socket listener: %w", err)
	}

	if err := os.Chmod(s.config.SocketPath, s.config.SocketMode); err != nil {
		_ = listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("Starting Unix socket server", "socket", s.config.SocketPath)

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("unix socket server error: %w", err)
	}
	return nil
}

// Listening reports whether Start has bound the socket
func (s *Server) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener != nil
}

// Stop gracefully stops the server and removes the socket file
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping Unix socket server")

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Errorf("Error shutting down Unix socket server: %v", err)
		return err
	}

	if err := os.Remove(s.config.SocketPath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove socket file", "error", err)
	}

	s.logger.Info("Unix socket server stopped")
	return nil
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.config.SocketPath
}
