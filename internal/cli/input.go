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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jeremyhahn/go-shameless/pkg/keysplit"
	"github.com/jeremyhahn/go-shameless/pkg/secret"
)

const (
	// maxMnemonicBytes bounds mnemonic input; 24 English words fit well below it
	maxMnemonicBytes = 4096

	// maxShareLineBytes bounds a single share line on stdin
	maxShareLineBytes = 1 << 20
)

// readMnemonic returns the mnemonic from path, an interactive prompt or
// piped stdin, in that order of preference. The caller closes the buffer.
func readMnemonic(cmd *cobra.Command, path string) (*secret.Buffer, error) {
	if path != "" {
		// #nosec G304 - Mnemonic file path is provided by the user
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open mnemonic file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return secret.NewFromReader(f, maxMnemonicBytes)
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return promptMnemonic(cmd, f)
	}
	buf, err := secret.NewFromReader(in, maxMnemonicBytes)
	if errors.Is(err, secret.ErrEmpty) {
		return nil, fmt.Errorf("no mnemonic provided on stdin")
	}
	return buf, err
}

// promptMnemonic reads the mnemonic from a terminal without echoing it
func promptMnemonic(cmd *cobra.Command, f *os.File) (*secret.Buffer, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Enter mnemonic: ")
	data, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	defer clear(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read mnemonic: %w", err)
	}
	return secret.NewFromReader(strings.NewReader(string(data)), maxMnemonicBytes)
}

// readShares collects shares from args, a shares file or stdin. Every
// share occupies one line; blank lines, comments and the "Share #N:"
// headers printed by split are skipped.
func readShares(cmd *cobra.Command, path string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var in io.Reader = cmd.InOrStdin()
	if path != "" {
		// #nosec G304 - Shares file path is provided by the user
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open shares file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	shares, err := scanShares(in)
	if err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, keysplit.ErrNoShares
	}
	return shares, nil
}

func scanShares(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxShareLineBytes)

	var shares []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || isShareHeader(line) {
			continue
		}
		shares = append(shares, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shares: %w", err)
	}
	return shares, nil
}

func isShareHeader(line string) bool {
	return strings.HasPrefix(line, "Share #") && strings.HasSuffix(line, ":")
}
