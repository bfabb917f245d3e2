// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package receipt renders completed transfers and account statements to
// files the user can keep. Supports plain text and Markdown output.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// TYPES
// =============================================================================

// Receipt is everything a transfer receipt shows. The sender's account
// number is masked before it ever reaches this struct.
type Receipt struct {
	Transaction   *model.Transaction
	FromAccount   string // masked, e.g. "••••1234"
	RecipientName string
	GeneratedAt   time.Time
}

// Exporter renders a receipt in one output format.
type Exporter interface {
	Export(r *Receipt) ([]byte, error)
	FileExtension() string
}

// Options configures where and how receipts are written.
type Options struct {
	// OutputDir is the directory receipts are saved under.
	// Default: ~/.teller/receipts
	OutputDir string
}

// DefaultOptions returns options pointing at the standard receipts
// directory under the user's home.
func DefaultOptions() *Options {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Options{OutputDir: "receipts"}
	}
	return &Options{OutputDir: filepath.Join(home, ".teller", "receipts")}
}

// =============================================================================
// WRITING
// =============================================================================

// WriteReceipt renders the receipt and writes it under the output
// directory. Filenames carry a random component so two receipts for
// the same transaction never collide. Returns the written path.
func WriteReceipt(r *Receipt, exporter Exporter, opts *Options) (string, error) {
	if r == nil || r.Transaction == nil {
		return "", fmt.Errorf("receipt: no transaction")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(r)
	if err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}

	name := fmt.Sprintf("receipt_%s_%s%s",
		sanitizeFilename(r.Transaction.TransactionID),
		uuid.New().String()[:8],
		exporter.FileExtension(),
	)

	path := filepath.Join(opts.OutputDir, name)
	if err := util.AtomicWriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return path, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "transfer"
	}
	return b.String()
}

// formatTimestamp formats a timestamp for display on receipts.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// statusLabel renders a transaction status for display.
func statusLabel(status string) string {
	if status == "" {
		return "Unknown"
	}
	return strings.ToUpper(status[:1]) + status[1:]
}
