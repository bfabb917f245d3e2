// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package receipt

import (
	"fmt"
	"strings"

	"github.com/jeranaias/teller-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders receipts as Markdown with a detail table.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a Markdown receipt exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

func (e *MarkdownExporter) FileExtension() string { return ".md" }

func (e *MarkdownExporter) Export(r *Receipt) ([]byte, error) {
	tx := r.Transaction
	var b strings.Builder

	b.WriteString("# Transfer Receipt\n\n")
	fmt.Fprintf(&b, "**%s** — %s\n\n", model.FormatCurrency(tx.Amount), statusLabel(tx.Status))

	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	writeRow(&b, "Transaction ID", tx.TransactionID)
	writeRow(&b, "Date", formatTimestamp(tx.CreatedAt))
	writeRow(&b, "From", r.FromAccount)
	writeRow(&b, "To", tx.ToAccount)
	if r.RecipientName != "" {
		writeRow(&b, "Recipient", r.RecipientName)
	}
	if tx.Description != "" {
		writeRow(&b, "Description", tx.Description)
	}
	writeRow(&b, "Amount", model.FormatCurrency(tx.Amount))

	fmt.Fprintf(&b, "\n*Generated %s*\n", formatTimestamp(r.GeneratedAt))

	return []byte(b.String()), nil
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, escapePipes(value))
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
