// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/ui/styles"
)

// =============================================================================
// HELP OVERLAY
// =============================================================================

const helpMarkdown = `# teller help

## Navigation

| Key | Action |
|-----|--------|
| tab / shift+tab | Move between fields |
| enter | Submit / select |
| esc | Back / dismiss |
| ctrl+c | Quit |

## Screens

| Key | Screen |
|-----|--------|
| d | Dashboard |
| t | Transfer money |
| h | Transaction history |
| s | Settings |

## Transfer wizard

Quick amounts on the details step: **1** $10 · **2** $50 · **3** $100 ·
**4** $500 · **m** full balance. Filling the date field schedules the
transfer instead of sending it now. On the confirm step, **space**
toggles the confirmation checkbox. A transfer can be saved as a
template from the result step with **shift+s**.

## History

**f** cycles the status filter, **y** the type filter, **o** flips the
sort order, **/** searches. In the detail view, **r** saves a receipt
and **x** cancels a scheduled transfer.

## Session

Your session ends after 15 minutes without input. A warning appears
two minutes before; any activity keeps it alive.
`

// HelpOverlay renders the key reference as glamour-formatted markdown
// inside a scrollable viewport.
type HelpOverlay struct {
	visible  bool
	viewport viewport.Model
	rendered string
	width    int
	height   int
	theme    *styles.Theme
}

// NewHelpOverlay creates a hidden help overlay.
func NewHelpOverlay(theme *styles.Theme) HelpOverlay {
	return HelpOverlay{
		viewport: viewport.New(60, 20),
		theme:    theme,
	}
}

// SetSize resizes the overlay and re-renders the content to fit.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height

	vw := width - 10
	if vw < 40 {
		vw = 40
	}
	if vw > 76 {
		vw = 76
	}
	vh := height - 6
	if vh < 10 {
		vh = 10
	}
	h.viewport.Width = vw
	h.viewport.Height = vh
	h.render(vw)
}

// render formats the help markdown at the given width. Falls back to
// the raw markdown if the renderer cannot start.
func (h *HelpOverlay) render(width int) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		h.rendered = helpMarkdown
	} else if out, err := renderer.Render(helpMarkdown); err != nil {
		h.rendered = helpMarkdown
	} else {
		h.rendered = out
	}
	h.viewport.SetContent(h.rendered)
}

// Show displays the overlay.
func (h *HelpOverlay) Show() {
	h.visible = true
	h.viewport.GotoTop()
	if h.rendered == "" {
		h.render(h.viewport.Width)
	}
}

// Hide hides the overlay.
func (h *HelpOverlay) Hide() {
	h.visible = false
}

// IsVisible reports whether the overlay is shown.
func (h *HelpOverlay) IsVisible() bool {
	return h.visible
}

// Update handles scrolling while visible; esc or ? closes.
func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if !h.visible {
		return h, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "?", "q":
			h.Hide()
			return h, nil
		}
	}
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View renders the help box centered on the screen.
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	width := h.width
	if width == 0 {
		width = 80
	}
	height := h.height
	if height == 0 {
		height = 24
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Blue).
		Padding(0, 1).
		Render(h.viewport.View())

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		box,
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}
