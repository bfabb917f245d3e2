// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the teller TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormLabel        lipgloss.Style
	FormHint         lipgloss.Style
	FieldFocused     lipgloss.Style
	FieldBlurred     lipgloss.Style
	CheckboxChecked  lipgloss.Style
	CheckboxBlank    lipgloss.Style
	ButtonActive     lipgloss.Style
	ButtonInactive   lipgloss.Style

	// ==========================================================================
	// DASHBOARD STYLES
	// ==========================================================================

	BalanceCard   lipgloss.Style
	BalanceAmount lipgloss.Style
	BalanceLabel  lipgloss.Style
	StatLabel     lipgloss.Style
	StatValue     lipgloss.Style

	// ==========================================================================
	// TRANSACTION LIST STYLES
	// ==========================================================================

	TxRow         lipgloss.Style
	TxRowSelected lipgloss.Style
	TxCredit      lipgloss.Style
	TxDebit       lipgloss.Style
	TxMeta        lipgloss.Style

	// ==========================================================================
	// WIZARD STYLES
	// ==========================================================================

	StepActive   lipgloss.Style
	StepDone     lipgloss.Style
	StepPending  lipgloss.Style
	ConfirmBox   lipgloss.Style
	ResultBox    lipgloss.Style
	ResultFailed lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	SessionClock lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	ErrorBox   lipgloss.Style
	SuccessBox lipgloss.Style
	Spinner    lipgloss.Style
}

// NewTheme creates a theme for the configured appearance. The name
// comes from config ("dark" or "light"); terminal detection fills in
// everything else.
func NewTheme(name string) *Theme {
	colorProfile := termenv.ColorProfile()

	isDark := name != "light"
	if name == "" {
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Forms
	t.FormLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FieldFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Padding(0, 1)

	t.FieldBlurred = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CheckboxChecked = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald)

	t.CheckboxBlank = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ButtonActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Blue).
		Padding(0, 3)

	t.ButtonInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 3)

	// Dashboard
	t.BalanceCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Padding(1, 3)

	t.BalanceAmount = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.BalanceLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	// Transaction list
	t.TxRow = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.TxRowSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Blue).
		Padding(0, 1)

	t.TxCredit = lipgloss.NewStyle().
		Foreground(Emerald)

	t.TxDebit = lipgloss.NewStyle().
		Foreground(Rose)

	t.TxMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Wizard step indicator
	t.StepActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Blue).
		Padding(0, 1)

	t.StepDone = lipgloss.NewStyle().
		Foreground(Emerald).
		Padding(0, 1)

	t.StepPending = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.ConfirmBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(1, 3)

	t.ResultBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Emerald).
		Padding(1, 3)

	t.ResultFailed = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 3)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SessionClock = lipgloss.NewStyle().
		Foreground(Amber)

	// Messages
	t.ErrorBox = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 2)

	t.SuccessBox = lipgloss.NewStyle().
		Foreground(Emerald).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 2)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Blue)
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
