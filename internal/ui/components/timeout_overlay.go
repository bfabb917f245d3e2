// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/session"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
)

// =============================================================================
// SESSION TIMEOUT OVERLAY
// =============================================================================

// TimeoutOverlay warns that the session is about to expire and offers
// two choices: continue the session or log out now. It covers every
// screen; while visible it owns the keyboard.
type TimeoutOverlay struct {
	visible       bool
	timeRemaining time.Duration
	choice        int // 0 = continue, 1 = log out

	width  int
	height int

	theme *styles.Theme
}

// ExtendSessionMsg signals the user chose to keep working.
type ExtendSessionMsg struct{}

// LogoutNowMsg signals the user chose to log out from the warning.
type LogoutNowMsg struct{}

// NewTimeoutOverlay creates a hidden timeout overlay.
func NewTimeoutOverlay(theme *styles.Theme) TimeoutOverlay {
	return TimeoutOverlay{theme: theme}
}

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// SetSize sets the overlay dimensions.
func (o *TimeoutOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// Show displays the overlay with the given time remaining.
func (o *TimeoutOverlay) Show(remaining time.Duration) {
	o.visible = true
	o.timeRemaining = remaining
	o.choice = 0
}

// Hide hides the overlay.
func (o *TimeoutOverlay) Hide() {
	o.visible = false
}

// UpdateTime refreshes the countdown while the overlay is up.
func (o *TimeoutOverlay) UpdateTime(remaining time.Duration) {
	o.timeRemaining = remaining
}

// IsVisible reports whether the overlay is currently shown.
func (o *TimeoutOverlay) IsVisible() bool {
	return o.visible
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update handles keys while the overlay is visible. Arrow keys and tab
// move between the two choices; enter commits. Esc continues the
// session, matching the safer default.
func (o TimeoutOverlay) Update(msg tea.Msg) (TimeoutOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height

	case tea.KeyMsg:
		if !o.visible {
			return o, nil
		}
		switch msg.String() {
		case "left", "right", "tab", "shift+tab":
			o.choice = 1 - o.choice
		case "esc":
			o.Hide()
			return o, func() tea.Msg { return ExtendSessionMsg{} }
		case "enter":
			choice := o.choice
			o.Hide()
			if choice == 1 {
				return o, func() tea.Msg { return LogoutNowMsg{} }
			}
			return o, func() tea.Msg { return ExtendSessionMsg{} }
		}
	}

	return o, nil
}

// View renders the centered warning box over a dimmed backdrop.
func (o TimeoutOverlay) View() string {
	if !o.visible {
		return ""
	}

	width := o.width
	if width == 0 {
		width = 60
	}
	height := o.height
	if height == 0 {
		height = 24
	}

	maxWidth := width - 8
	if maxWidth < 40 {
		maxWidth = 40
	}
	if maxWidth > 60 {
		maxWidth = 60
	}

	timeStr := session.FormatRemaining(o.timeRemaining)

	var parts []string

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)
	parts = append(parts, titleStyle.Render(styles.StatusIndicators.Warning+" Session Timeout Warning"))

	parts = append(parts, "")

	timeStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)
	msgStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 4).
		Align(lipgloss.Center)
	parts = append(parts, msgStyle.Render(
		"Your session will expire in "+timeStyle.Render(timeStr)))

	parts = append(parts, "")

	// Buttons
	cont := "Continue Session"
	logout := "Log Out Now"
	if o.choice == 0 {
		cont = o.theme.ButtonActive.Render(cont)
		logout = o.theme.ButtonInactive.Render(logout)
	} else {
		cont = o.theme.ButtonInactive.Render(cont)
		logout = o.theme.ButtonActive.Render(logout)
	}
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Center, cont, "  ", logout))

	parts = append(parts, "")

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true).
		Align(lipgloss.Center)
	parts = append(parts, hintStyle.Render("enter select · tab switch · esc continue"))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 3).
		Width(maxWidth).
		Align(lipgloss.Center)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Render(content),
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}
