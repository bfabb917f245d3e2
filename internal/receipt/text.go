// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package receipt

import (
	"fmt"
	"strings"

	"github.com/jeranaias/teller-tui/internal/model"
)

// =============================================================================
// TEXT EXPORTER
// =============================================================================

// TextExporter renders receipts as fixed-width plain text, printable
// on anything.
type TextExporter struct{}

// NewTextExporter creates a plain text receipt exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

func (e *TextExporter) FileExtension() string { return ".txt" }

func (e *TextExporter) Export(r *Receipt) ([]byte, error) {
	tx := r.Transaction
	var b strings.Builder

	rule := strings.Repeat("=", 46)
	b.WriteString(rule + "\n")
	b.WriteString(center("TRANSFER RECEIPT", 46) + "\n")
	b.WriteString(rule + "\n\n")

	writeField(&b, "Transaction ID", tx.TransactionID)
	writeField(&b, "Date", formatTimestamp(tx.CreatedAt))
	writeField(&b, "Status", statusLabel(tx.Status))
	b.WriteString("\n")
	writeField(&b, "From", r.FromAccount)
	writeField(&b, "To", tx.ToAccount)
	if r.RecipientName != "" {
		writeField(&b, "Recipient", r.RecipientName)
	}
	if tx.Description != "" {
		writeField(&b, "Description", tx.Description)
	}
	b.WriteString("\n")
	writeField(&b, "Amount", model.FormatCurrency(tx.Amount))

	b.WriteString("\n" + rule + "\n")
	b.WriteString("Generated " + formatTimestamp(r.GeneratedAt) + "\n")

	return []byte(b.String()), nil
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-16s %s\n", label+":", value)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
