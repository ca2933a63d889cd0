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
)

func newGenerateCommand(cfg *Config) *cobra.Command {
	var words int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random BIP39 mnemonic",
		Long: `Generate a new BIP39 mnemonic from system randomness. The phrase is
printed on its own line so it can be piped straight into split.`,
		Example: `  shameless generate --words 24
  shameless generate | shameless split -t 2 -s 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := keysplit.Generate(words)
			if err != nil {
				return err
			}
			cfg.printVerbose(cmd, "Generated %d-word mnemonic (%d bytes of entropy)",
				result.Words, result.EntropyBytes)
			return cfg.printer(cmd).PrintGenerateResult(result)
		},
	}

	cmd.Flags().IntVarP(&words, "words", "w", keysplit.DefaultGenerateWords,
		"number of words (12, 15, 18, 21 or 24)")

	return cmd
}
