// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/session"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom bar: key hints on the left, the session
// countdown on the right once it drops under the warning threshold.
type StatusBar struct {
	Width     int
	shortcuts []Shortcut
	remaining time.Duration
	showClock bool
	theme     *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetShortcuts replaces the key hints for the active screen.
func (s *StatusBar) SetShortcuts(shortcuts []Shortcut) {
	s.shortcuts = shortcuts
}

// SetCountdown shows or hides the session countdown.
func (s *StatusBar) SetCountdown(remaining time.Duration, show bool) {
	s.remaining = remaining
	s.showClock = show
}

// View renders the status bar.
func (s *StatusBar) View() string {
	width := s.Width
	if width < 40 {
		width = 40
	}

	var parts []string
	for _, sc := range s.shortcuts {
		parts = append(parts,
			s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	left := strings.Join(parts, "  ")

	var right string
	if s.showClock {
		right = s.theme.SessionClock.Render(
			styles.StatusIndicators.Warning + " " + session.FormatRemaining(s.remaining))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return s.theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
