// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the teller application.
package util

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// IntToString converts an int to string.
func IntToString(i int) string {
	return strconv.Itoa(i)
}

// TruncateString truncates a string to maxLen display cells, adding "..."
// if truncated. Width-aware so wide runes don't blow past the limit.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

// PadRight pads a string with spaces to the given display width.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// PadLeft pads a string with spaces on the left to the given display width.
func PadLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// MaskAccount renders an account number as bullets plus its last four
// digits, matching how every screen displays account identifiers.
func MaskAccount(account string) string {
	if len(account) <= 4 {
		return account
	}
	return "••••" + account[len(account)-4:]
}

// CollapseWhitespace replaces newlines with spaces so free-text notes fit
// on single display lines.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}
