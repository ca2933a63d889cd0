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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeremyhahn/go-shameless/pkg/keysplit"
	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// validateFormat rejects formats other than text and json
func validateFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatText, OutputFormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format: %s (must be text or json)", format)
	}
}

// PrintGenerateResult prints a generated mnemonic. Text output is the bare
// phrase so it can be piped into split.
func (p *Printer) PrintGenerateResult(result *keysplit.GenerateResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	case OutputFormatText:
		fmt.Fprintln(p.writer, result.Mnemonic)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSplitResult prints the shares produced by a split
func (p *Printer) PrintSplitResult(result *keysplit.SplitResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Original mnemonic entropy: %d bytes\n", result.EntropyBytes)
		fmt.Fprintf(p.writer, "\nCreated %d shares (threshold: %d, scheme: %s)\n",
			result.ShareCount, result.Threshold, result.Scheme)
		fmt.Fprintf(p.writer, "You need at least %d shares to reconstruct the secret.\n\n", result.Threshold)
		for i, share := range result.Shares {
			fmt.Fprintf(p.writer, "Share #%d:\n%s\n\n", i+1, share)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintCombineResult prints a recovered mnemonic
func (p *Printer) PrintCombineResult(result *keysplit.CombineResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	case OutputFormatText:
		indices := make([]string, len(result.Indices))
		for i, index := range result.Indices {
			indices[i] = fmt.Sprint(index)
		}
		fmt.Fprintf(p.writer, "Combined %d share(s) (threshold: %d, indices: %s)\n",
			result.SharesUsed, result.Threshold, strings.Join(indices, ", "))
		fmt.Fprintf(p.writer, "\nSuccessfully reconstructed mnemonic:\n%s\n", result.Mnemonic)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintEncodedShare prints a single word share
func (p *Printer) PrintEncodedShare(share *shamir39.EncodedShare) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{
			"share": share.String(),
			"words": share.Len(),
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, share.String())
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintDecodedShare prints the components of a decoded share
func (p *Printer) PrintDecodedShare(share *shamir39.DecodedShare) error {
	data := hex.EncodeToString(share.Data)
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{
			"threshold": share.Threshold.Int(),
			"index":     int(share.Index.Value()),
			"data":      data,
			"size":      len(share.Data),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Threshold: %s\n", share.Threshold)
		fmt.Fprintf(p.writer, "Index:     %s\n", share.Index)
		fmt.Fprintf(p.writer, "Size:      %d bytes\n", len(share.Data))
		fmt.Fprintf(p.writer, "Data:      %s\n", data)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{
			"status":  "success",
			"message": message,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, message)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{
			"status": "error",
			"error":  err.Error(),
		})
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

func (p *Printer) printJSON(data any) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
