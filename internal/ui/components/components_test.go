// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/teller-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("dark")
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeaderView(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(80)
	h.SetUser("Jane Doe", "2844829203")

	out := h.View()
	if !strings.Contains(out, "teller") {
		t.Error("header should show the app name")
	}
	if !strings.Contains(out, "Jane Doe") {
		t.Error("header should show the user")
	}
	if strings.Contains(out, "2844829203") {
		t.Error("header must not show the full account number")
	}
	if !strings.Contains(out, "9203") {
		t.Error("header should show the account's last four digits")
	}
}

func TestHeaderClearUser(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetUser("Jane Doe", "2844829203")
	h.ClearUser()
	if strings.Contains(h.View(), "Jane") {
		t.Error("cleared header must not show a user")
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBarShortcutsAndClock(t *testing.T) {
	s := NewStatusBar(testTheme())
	s.SetWidth(80)
	s.SetShortcuts([]Shortcut{{Key: "t", Desc: "transfer"}, {Key: "q", Desc: "quit"}})

	out := s.View()
	if !strings.Contains(out, "transfer") || !strings.Contains(out, "quit") {
		t.Error("status bar should list shortcuts")
	}
	if strings.Contains(out, "1:30") {
		t.Error("countdown hidden by default")
	}

	s.SetCountdown(90*time.Second, true)
	if !strings.Contains(s.View(), "1:30") {
		t.Error("countdown should show when enabled")
	}
}

// =============================================================================
// STEP INDICATOR TESTS
// =============================================================================

func TestStepIndicator(t *testing.T) {
	si := NewStepIndicator(testTheme(), "Details", "Confirm", "Result")

	out := si.View(1)
	if !strings.Contains(out, "[OK] Details") {
		t.Error("completed step should carry the success indicator")
	}
	if !strings.Contains(out, "[2] Confirm") {
		t.Error("active step should carry its number")
	}
	if !strings.Contains(out, "[3] Result") {
		t.Error("pending step should carry its number")
	}
}

// =============================================================================
// TIMEOUT OVERLAY TESTS
// =============================================================================

func TestTimeoutOverlayShowHide(t *testing.T) {
	o := NewTimeoutOverlay(testTheme())
	if o.IsVisible() {
		t.Fatal("overlay starts hidden")
	}
	if o.View() != "" {
		t.Error("hidden overlay renders nothing")
	}

	o.Show(90 * time.Second)
	if !o.IsVisible() {
		t.Fatal("overlay should be visible after Show")
	}
	out := o.View()
	if !strings.Contains(out, "1:30") {
		t.Error("overlay should show the countdown")
	}
	if !strings.Contains(out, "Continue Session") || !strings.Contains(out, "Log Out Now") {
		t.Error("overlay should offer both choices")
	}
}

func TestTimeoutOverlayEnterContinues(t *testing.T) {
	o := NewTimeoutOverlay(testTheme())
	o.Show(time.Minute)

	o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if o.IsVisible() {
		t.Error("enter should dismiss the overlay")
	}
	if cmd == nil {
		t.Fatal("enter should emit a message")
	}
	if _, ok := cmd().(ExtendSessionMsg); !ok {
		t.Error("default choice should extend the session")
	}
}

func TestTimeoutOverlayLogoutChoice(t *testing.T) {
	o := NewTimeoutOverlay(testTheme())
	o.Show(time.Minute)

	o, _ = o.Update(tea.KeyMsg{Type: tea.KeyTab})
	o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a message")
	}
	if _, ok := cmd().(LogoutNowMsg); !ok {
		t.Error("second choice should log out")
	}
}

func TestTimeoutOverlayEscContinues(t *testing.T) {
	o := NewTimeoutOverlay(testTheme())
	o.Show(time.Minute)

	o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if o.IsVisible() {
		t.Error("esc should dismiss the overlay")
	}
	if cmd == nil {
		t.Fatal("esc should emit a message")
	}
	if _, ok := cmd().(ExtendSessionMsg); !ok {
		t.Error("esc should extend, never log out")
	}
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinnerLifecycle(t *testing.T) {
	s := NewSpinner(testTheme())
	if s.Active() {
		t.Fatal("spinner starts inactive")
	}
	if s.View() != "" {
		t.Error("inactive spinner renders nothing")
	}

	cmd := s.Start("Processing transfer")
	if cmd == nil {
		t.Error("Start should return the tick command")
	}
	if !s.Active() {
		t.Error("spinner should be active after Start")
	}
	if !strings.Contains(s.View(), "Processing transfer") {
		t.Error("spinner should show its message")
	}

	s.Stop()
	if s.Active() || s.View() != "" {
		t.Error("stopped spinner renders nothing")
	}
}

// =============================================================================
// HELP OVERLAY TESTS
// =============================================================================

func TestHelpOverlayToggle(t *testing.T) {
	h := NewHelpOverlay(testTheme())
	h.SetSize(100, 30)

	if h.IsVisible() {
		t.Fatal("help starts hidden")
	}
	h.Show()
	if !h.IsVisible() {
		t.Fatal("help should be visible after Show")
	}
	if h.View() == "" {
		t.Error("visible help should render content")
	}

	h, _ = h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if h.IsVisible() {
		t.Error("esc should close help")
	}
}
