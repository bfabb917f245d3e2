// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme("dark")

	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	if !theme.IsDark {
		t.Error("dark theme should report IsDark")
	}

	// Styles render without panicking and produce output
	if theme.Header.Render("test") == "" {
		t.Error("Header style should render")
	}
	if theme.BalanceCard.Render("test") == "" {
		t.Error("BalanceCard style should render")
	}
	if theme.ErrorBox.Render("test") == "" {
		t.Error("ErrorBox style should render")
	}
}

func TestNewThemeLight(t *testing.T) {
	theme := NewTheme("light")
	if theme.IsDark {
		t.Error("light theme should not report IsDark")
	}
}

func TestSetSize(t *testing.T) {
	theme := NewTheme("dark")
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize = %dx%d, want 120x40", theme.Width, theme.Height)
	}
}

// =============================================================================
// INDICATOR TESTS
// =============================================================================

func TestRenderHelpersIncludeIndicators(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"success", RenderSuccess, "[OK]"},
		{"error", RenderError, "[X]"},
		{"warning", RenderWarning, "[!]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.fn("message")
			if !strings.Contains(out, tt.want) {
				t.Errorf("%s output %q missing indicator %q", tt.name, out, tt.want)
			}
			if !strings.Contains(out, "message") {
				t.Errorf("%s output should include the message", tt.name)
			}
		})
	}
}

func TestStatusColor(t *testing.T) {
	if StatusColor("completed") != Emerald {
		t.Error("completed should map to Emerald")
	}
	if StatusColor("pending") != Amber {
		t.Error("pending should map to Amber")
	}
	if StatusColor("failed") != Rose {
		t.Error("failed should map to Rose")
	}
	if StatusColor("weird") != TextSecondary {
		t.Error("unknown status should map to TextSecondary")
	}
}
