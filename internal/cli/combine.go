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
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
)

func newCombineCommand(cfg *Config) *cobra.Command {
	var (
		scheme     string
		sharesFile string
	)

	cmd := &cobra.Command{
		Use:   "combine [SHARE...]",
		Short: "Combine shares to reconstruct the original mnemonic",
		Long: `Combine word-encoded shares to reconstruct the original mnemonic.

Each share is one line. Shares are taken from the arguments (quote each
share), from --shares-file, or from stdin until EOF. The scheme must
match the one used to split.`,
		Example: `  shameless combine < shares.txt
  shameless combine --scheme sssa --shares-file shares.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("scheme") {
				scheme = cfg.Settings().Split.Scheme
			}
			s, err := shamir.NewScheme(scheme)
			if err != nil {
				return err
			}

			shares, err := readShares(cmd, sharesFile, args)
			if err != nil {
				return err
			}

			cfg.printVerbose(cmd, "Parsing %d share(s)...", len(shares))

			result, err := keysplit.Combine(shares, s)
			if err != nil {
				return err
			}

			cfg.Logger().Debug("combine complete",
				"scheme", result.Scheme,
				"threshold", result.Threshold,
				"shares_used", result.SharesUsed)

			return cfg.printer(cmd).PrintCombineResult(result)
		},
	}

	cmd.Flags().StringVar(&scheme, "scheme", shamir.DefaultScheme, "secret sharing scheme (gf256, sssa)")
	cmd.Flags().StringVar(&sharesFile, "shares-file", "", "read shares from this file, one per line")

	return cmd
}
