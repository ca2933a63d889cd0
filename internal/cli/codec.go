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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-shameless/pkg/keysplit"
)

func newEncodeCommand(cfg *Config) *cobra.Command {
	var (
		threshold int
		index     int
		data      string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode raw share bytes as a word share",
		Long: `Encode hex-encoded share bytes, a threshold and a share index as a
single word share. This is the low-level codec used by split.`,
		Example: `  shameless encode --threshold 3 --index 0 --hex abcdef1234`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(strings.TrimSpace(data))
			if err != nil {
				return fmt.Errorf("invalid --hex value: %w", err)
			}
			defer clear(raw)

			share, err := keysplit.EncodeShare(raw, threshold, index)
			if err != nil {
				return err
			}
			defer share.Zeroize()

			return cfg.printer(cmd).PrintEncodedShare(share)
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "threshold to embed (2-255)")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "share index to embed (0-254)")
	cmd.Flags().StringVar(&data, "hex", "", "share bytes, hex encoded")

	return cmd
}

func newDecodeCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "decode SHARE",
		Short: "Decode a word share into its components",
		Long: `Decode a word share and print its threshold, index and data bytes.
The share may be given as a single quoted argument or as separate words.`,
		Example: `  shameless decode "shameless ..."`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := keysplit.DecodeShare(strings.Join(args, " "))
			if err != nil {
				return err
			}
			defer decoded.Zeroize()

			return cfg.printer(cmd).PrintDecodedShare(decoded)
		},
	}
}
