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

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
	"github.com/jeremyhahn/go-shameless/pkg/validation"
)

// Config represents the complete shameless configuration
type Config struct {
	Split     SplitConfig     `yaml:"split"`
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	TLS       TLSConfig       `yaml:"tls"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

// SplitConfig holds defaults for the split and combine commands
type SplitConfig struct {
	Threshold int    `yaml:"threshold"`
	Shares    int    `yaml:"shares"`
	Scheme    string `yaml:"scheme"` // gf256, sssa
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig contains REST server settings
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	Socket       string `yaml:"socket"` // optional Unix socket path
}

// TLSConfig controls TLS for the REST server
type TLSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	MinVersion string `yaml:"min_version"` // TLS1.2, TLS1.3
}

// MetricsConfig controls the metrics endpoint and textfile export
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	Textfile string `yaml:"textfile"`
}

// RateLimitConfig throttles the REST API per client address
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	Burst             int  `yaml:"burst"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Split: SplitConfig{
			Threshold: 2,
			Shares:    3,
			Scheme:    shamir.DefaultScheme,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8339,
			MaxBodyBytes: 1 << 20,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
			Burst:             10,
		},
	}
}

// Load reads configuration from a YAML file over the defaults and applies
// environment variable overrides
func Load(path string) (*Config, error) {
	// #nosec G304 - Config file path is provided by admin/user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or the defaults with environment overrides
// when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg := Default()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	// Split defaults
	envInt("SHAMELESS_THRESHOLD", &cfg.Split.Threshold)
	envInt("SHAMELESS_SHARES", &cfg.Split.Shares)
	if scheme := os.Getenv("SHAMELESS_SCHEME"); scheme != "" {
		cfg.Split.Scheme = scheme
	}

	// Server settings
	if host := os.Getenv("SHAMELESS_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if socket := os.Getenv("SHAMELESS_SOCKET"); socket != "" {
		cfg.Server.Socket = socket
	}
	if restPort := os.Getenv("SHAMELESS_PORT"); restPort != "" {
		port, err := strconv.Atoi(restPort)
		if err != nil {
			log.Printf("Warning: invalid SHAMELESS_PORT value %q, using default %d: %v",
				restPort, cfg.Server.Port, err)
		} else if port < 1 || port > 65535 {
			log.Printf("Warning: invalid SHAMELESS_PORT value %q (out of range 1-65535), using default %d",
				restPort, cfg.Server.Port)
		} else {
			cfg.Server.Port = port
		}
	}

	// Logging
	if level := os.Getenv("SHAMELESS_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("SHAMELESS_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}

	// Metrics
	if enabled := os.Getenv("SHAMELESS_METRICS_ENABLED"); enabled != "" {
		value, err := strconv.ParseBool(enabled)
		if err != nil {
			log.Printf("Warning: invalid SHAMELESS_METRICS_ENABLED value %q, using default %t",
				enabled, cfg.Metrics.Enabled)
		} else {
			cfg.Metrics.Enabled = value
		}
	}
	if textfile := os.Getenv("SHAMELESS_METRICS_TEXTFILE"); textfile != "" {
		cfg.Metrics.Textfile = textfile
	}
}

func envInt(name string, target *int) {
	raw := os.Getenv(name)
	if raw == "" {
		return
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using default %d: %v", name, raw, *target, err)
		return
	}
	*target = value
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := shamir39.ParseSplitConfig(c.Split.Threshold, c.Split.Shares); err != nil {
		return fmt.Errorf("invalid split defaults: %w", err)
	}
	if _, err := shamir.NewScheme(c.Split.Scheme); err != nil {
		return err
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Socket != "" {
		if err := validation.ValidateSocketPath(c.Server.Socket); err != nil {
			return fmt.Errorf("invalid server socket: %w", err)
		}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max_body_bytes: %d", c.Server.MaxBodyBytes)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validFormats := map[string]bool{
		"json": true, "text": true,
	}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}

	if c.TLS.Enabled {
		if c.TLS.CertFile == "" {
			return fmt.Errorf("TLS cert_file is required when TLS is enabled")
		}
		if c.TLS.KeyFile == "" {
			return fmt.Errorf("TLS key_file is required when TLS is enabled")
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/': %q", c.Metrics.Path)
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("invalid ratelimit requests_per_minute: %d", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

// Address returns the REST listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
