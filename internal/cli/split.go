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
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-shameless/pkg/keysplit"
	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
)

func newSplitCommand(cfg *Config) *cobra.Command {
	var (
		shares       int
		threshold    int
		scheme       string
		mnemonicFile string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a mnemonic into shares",
		Long: `Split a BIP-39 mnemonic into word-encoded Shamir shares.

The mnemonic is read from --mnemonic-file, from a hidden prompt when
stdin is a terminal, or from piped stdin. It is never accepted as a
command line argument.`,
		Example: `  shameless split -t 2 -s 3 < mnemonic.txt
  shameless split --threshold 3 --shares 5 --scheme sssa --mnemonic-file mnemonic.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := cfg.Settings()
			if !cmd.Flags().Changed("threshold") {
				threshold = settings.Split.Threshold
			}
			if !cmd.Flags().Changed("shares") {
				shares = settings.Split.Shares
			}
			if !cmd.Flags().Changed("scheme") {
				scheme = settings.Split.Scheme
			}

			splitConfig, err := shamir39.ParseSplitConfig(threshold, shares)
			if err != nil {
				return err
			}
			s, err := shamir.NewScheme(scheme)
			if err != nil {
				return err
			}

			phrase, err := readMnemonic(cmd, mnemonicFile)
			if err != nil {
				return err
			}
			defer func() { _ = phrase.Close() }()

			cfg.printVerbose(cmd, "Splitting mnemonic with %s (threshold %d of %d)",
				s.Name(), threshold, shares)

			result, err := keysplit.Split(phrase.String(), splitConfig, s)
			if err != nil {
				return err
			}

			cfg.Logger().Debug("split complete",
				"scheme", result.Scheme,
				"threshold", result.Threshold,
				"shares", result.ShareCount)

			return cfg.printer(cmd).PrintSplitResult(result)
		},
	}

	cmd.Flags().IntVarP(&shares, "shares", "s", 3, "number of shares to create (1-254)")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "shares needed to reconstruct (2-255)")
	cmd.Flags().StringVar(&scheme, "scheme", shamir.DefaultScheme, "secret sharing scheme (gf256, sssa)")
	cmd.Flags().StringVar(&mnemonicFile, "mnemonic-file", "", "read the mnemonic from this file")

	return cmd
}
