// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: app name on the left, the signed-in user
// and masked account number on the right.
type Header struct {
	Title         string
	UserName      string
	AccountNumber string // raw; masked at render time
	Width         int
	theme         *styles.Theme
}

// NewHeader creates a header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "teller",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetUser updates the signed-in user shown on the right.
func (h *Header) SetUser(name, accountNumber string) {
	h.UserName = name
	h.AccountNumber = accountNumber
}

// ClearUser removes the signed-in user from the header.
func (h *Header) ClearUser() {
	h.UserName = ""
	h.AccountNumber = ""
}

// View renders the header bar.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	left := h.theme.HeaderTitle.Render(h.Title)

	var right string
	if h.UserName != "" {
		right = h.theme.HeaderSubtitle.Render(
			h.UserName + "  " + util.MaskAccount(h.AccountNumber))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	bar := left + strings.Repeat(" ", gap) + right
	return h.theme.Header.Width(width).Render(bar)
}
