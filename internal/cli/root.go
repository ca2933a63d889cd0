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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-shameless/internal/config"
	"github.com/jeremyhahn/go-shameless/pkg/logging"
	"github.com/jeremyhahn/go-shameless/pkg/metrics"
)

// Config holds the global flags shared by every command
type Config struct {
	ConfigFile   string
	OutputFormat string
	Verbose      bool
	LogLevel     string
	MetricsFile  string

	// populated by the root command before a subcommand runs
	settings *config.Config
	logger   *logging.Logger
}

// NewConfig returns a Config with default flag values
func NewConfig() *Config {
	return &Config{
		OutputFormat: string(OutputFormatText),
	}
}

// Settings returns the loaded configuration file settings
func (c *Config) Settings() *config.Config {
	if c.settings == nil {
		return config.Default()
	}
	return c.settings
}

// Logger returns the command logger
func (c *Config) Logger() *logging.Logger {
	if c.logger == nil {
		return logging.Discard()
	}
	return c.logger
}

// NewRootCommand builds the shameless command tree
func NewRootCommand() *cobra.Command {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:   "shameless",
		Short: "Split BIP-39 mnemonics into word-encoded Shamir shares",
		Long: `shameless splits a BIP-39 mnemonic into Shamir secret shares and
encodes each share as a human-readable word list beginning with the
version word "shameless". Any threshold-sized subset of the shares
reconstructs the original mnemonic.

Supported schemes:
  - gf256: byte-wise Shamir over GF(2^8)
  - sssa:  Shamir over a 256-bit prime field`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.initialize(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.flushMetrics()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "",
		"config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&cfg.OutputFormat, "output", "o", string(OutputFormatText),
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "",
		"log level (debug, info, warn, error); overrides the config file")
	rootCmd.PersistentFlags().StringVar(&cfg.MetricsFile, "metrics-file", "",
		"write Prometheus metrics to this file when the command finishes")

	rootCmd.AddCommand(
		newSplitCommand(cfg),
		newCombineCommand(cfg),
		newEncodeCommand(cfg),
		newDecodeCommand(cfg),
		newGenerateCommand(cfg),
		newServeCommand(cfg),
		newVersionCommand(cfg),
	)

	return rootCmd
}

// Execute runs the root command and prints any error to stderr
func Execute() error {
	rootCmd := NewRootCommand()
	err := rootCmd.Execute()
	if err != nil {
		format, _ := rootCmd.PersistentFlags().GetString("output")
		printer := NewPrinter(format, os.Stderr)
		_ = printer.PrintError(err) // Error printing to stderr is best-effort
	}
	return err
}

// initialize loads settings, builds the logger and applies the metrics switch
func (c *Config) initialize(cmd *cobra.Command) error {
	if err := validateFormat(c.OutputFormat); err != nil {
		return err
	}

	settings, err := config.LoadOrDefault(c.ConfigFile)
	if err != nil {
		return err
	}
	c.settings = settings

	level := settings.Logging.Level
	if c.Verbose {
		level = "debug"
	}
	if c.LogLevel != "" {
		level = c.LogLevel
	}

	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: settings.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	c.logger = logger

	if settings.Metrics.Enabled {
		metrics.Enable()
	} else {
		metrics.Disable()
	}

	if c.ConfigFile != "" {
		c.printVerbose(cmd, "Loaded configuration from %s", c.ConfigFile)
	}
	return nil
}

// flushMetrics writes the textfile export when one is configured
func (c *Config) flushMetrics() error {
	path := c.MetricsFile
	if path == "" && c.settings != nil {
		path = c.settings.Metrics.Textfile
	}
	if path == "" || !metrics.IsEnabled() {
		return nil
	}
	if err := metrics.WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// printVerbose prints a message if verbose mode is enabled
func (c *Config) printVerbose(cmd *cobra.Command, format string, args ...any) {
	if c.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] "+format+"\n", args...)
	}
}

// printer returns a Printer writing to the command's stdout
func (c *Config) printer(cmd *cobra.Command) *Printer {
	return NewPrinter(c.OutputFormat, cmd.OutOrStdout())
}
