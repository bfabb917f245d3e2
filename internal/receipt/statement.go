// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package receipt

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// STATEMENT EXPORT
// =============================================================================

// WriteStatementCSV writes statement entries as CSV under the output
// directory, named by the covered date range. Returns the written path.
func WriteStatementCSV(entries []api.StatementEntry, start, end time.Time, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Description", "Type", "Amount", "Balance"}); err != nil {
		return "", fmt.Errorf("write statement header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.Date.Format("2006-01-02"),
			e.Description,
			e.Type,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			strconv.FormatFloat(e.Balance, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write statement row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush statement: %w", err)
	}

	name := fmt.Sprintf("statement_%s_%s.csv",
		start.Format("20060102"), end.Format("20060102"))
	path := filepath.Join(opts.OutputDir, name)
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("write statement: %w", err)
	}
	return path, nil
}
