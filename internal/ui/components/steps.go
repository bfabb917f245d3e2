// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/teller-tui/internal/ui/styles"
)

// =============================================================================
// STEP INDICATOR COMPONENT
// =============================================================================

// StepIndicator renders the wizard progress line, e.g.
// "[OK] Details > [2] Confirm > [3] Result".
type StepIndicator struct {
	Labels []string
	theme  *styles.Theme
}

// NewStepIndicator creates a step indicator with the given labels.
func NewStepIndicator(theme *styles.Theme, labels ...string) *StepIndicator {
	return &StepIndicator{Labels: labels, theme: theme}
}

// View renders the indicator with the given zero-based active step.
func (s *StepIndicator) View(active int) string {
	parts := make([]string, 0, len(s.Labels))
	for i, label := range s.Labels {
		switch {
		case i < active:
			parts = append(parts, s.theme.StepDone.Render(
				styles.StatusIndicators.Success+" "+label))
		case i == active:
			parts = append(parts, s.theme.StepActive.Render(
				numBadge(i+1)+" "+label))
		default:
			parts = append(parts, s.theme.StepPending.Render(
				numBadge(i+1)+" "+label))
		}
	}
	return strings.Join(parts, " > ")
}

func numBadge(n int) string {
	return "[" + strconv.Itoa(n) + "]"
}
