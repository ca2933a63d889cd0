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

package cli

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-shameless/internal/rest"
	"github.com/jeremyhahn/go-shameless/internal/unix"
	"github.com/jeremyhahn/go-shameless/pkg/metrics"
	"github.com/jeremyhahn/go-shameless/pkg/ratelimit"
)

const (
	shutdownTimeout         = 30 * time.Second
	resourceCollectInterval = 15 * time.Second
)

func newServeCommand(cfg *Config) *cobra.Command {
	var (
		host   string
		port   int
		socket string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Long: `Run the split and combine REST API. Settings come from the config
file and SHAMELESS_* environment variables; --host and --port override
the listen address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := cfg.Settings()
			if cmd.Flags().Changed("host") {
				settings.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				settings.Server.Port = port
			}
			if cmd.Flags().Changed("socket") {
				settings.Server.Socket = socket
			}

			restConfig, err := restConfigFromSettings(cfg)
			if err != nil {
				return err
			}
			server, err := rest.NewServer(restConfig)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var socketServer *unix.Server
			if settings.Server.Socket != "" {
				socketServer, err = unix.NewServer(&unix.Config{
					SocketPath: settings.Server.Socket,
					Handler:    server.Handler(),
					Logger:     cfg.Logger(),
				})
				if err != nil {
					return err
				}
			}

			return runServer(ctx, cfg, server, socketServer)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	cmd.Flags().StringVar(&socket, "socket", "", "also serve the API on this Unix socket")

	return cmd
}

// restConfigFromSettings maps the loaded configuration onto the REST server
func restConfigFromSettings(cfg *Config) (*rest.Config, error) {
	settings := cfg.Settings()
	if settings.Server.Port < 1 || settings.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port: %d", settings.Server.Port)
	}

	var tlsConfig *tls.Config
	if settings.TLS.Enabled {
		var err error
		tlsConfig, err = settings.TLS.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
	}

	var limit *ratelimit.Config
	if settings.RateLimit.Enabled {
		limit = &ratelimit.Config{
			Enabled:           true,
			RequestsPerMinute: settings.RateLimit.RequestsPerMinute,
			Burst:             settings.RateLimit.Burst,
		}
	}

	return &rest.Config{
		Address:   net.JoinHostPort(settings.Server.Host, strconv.Itoa(settings.Server.Port)),
		Version:   Version,
		TLSConfig: tlsConfig,
		Logger:    cfg.Logger(),
		Defaults: rest.SplitDefaults{
			Threshold: settings.Split.Threshold,
			Shares:    settings.Split.Shares,
			Scheme:    settings.Split.Scheme,
		},
		MaxBodyBytes:   settings.Server.MaxBodyBytes,
		MetricsEnabled: settings.Metrics.Enabled,
		MetricsPath:    settings.Metrics.Path,
		RateLimit:      limit,
	}, nil
}

// runServer serves until ctx is cancelled or a listener fails, then
// shuts every listener down gracefully. socketServer may be nil.
func runServer(ctx context.Context, cfg *Config, server *rest.Server, socketServer *unix.Server) error {
	logger := cfg.Logger()

	if metrics.IsEnabled() {
		collector := metrics.StartResourceCollector(ctx, resourceCollectInterval)
		defer collector.Stop()
	}

	running := 1
	errCh := make(chan error, 2)
	go func() {
		errCh <- server.Start()
	}()
	if socketServer != nil {
		running++
		go func() {
			errCh <- socketServer.Start()
		}()
	}

	var serveErr error
	select {
	case serveErr = <-errCh:
		running--
	case <-ctx.Done():
		logger.Debug("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var stopErr error
	if socketServer != nil {
		stopErr = socketServer.Stop(shutdownCtx)
	}
	if err := server.Stop(shutdownCtx); err != nil {
		stopErr = err
	}

	for ; running > 0; running-- {
		if err := <-errCh; err != nil && serveErr == nil {
			serveErr = err
		}
	}

	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	if stopErr != nil {
		return fmt.Errorf("shutdown failed: %w", stopErr)
	}
	return nil
}
