// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks authentication validity and user-activity recency.
package session

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to re-run the session check. Carries the
// interval so the handler can reschedule itself.
type TickMsg struct {
	Time     time.Time
	Interval time.Duration
}

// WarningMsg indicates the session is about to expire.
type WarningMsg struct {
	Remaining time.Duration
}

// ExpiredMsg indicates the session has expired or was forcibly ended.
type ExpiredMsg struct {
	Reason string
}

// TickCmd returns a command that ticks after the check interval. The
// resulting tick is handled by HandleTick, which always reschedules the
// next tick, so the cycle runs for the lifetime of the program.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Interval: interval}
	})
}

// HandleTick re-validates the session and returns the follow-up commands:
// always the next tick, plus an ExpiredMsg when a live session just lost
// validity, plus a WarningMsg when the warning is due (asserted once per
// crossing). Ticking with no session at all reschedules silently, so the
// check loop outlives a logout and picks the next login back up.
func (g *Guard) HandleTick(msg TickMsg) tea.Cmd {
	cmds := []tea.Cmd{TickCmd(msg.Interval)}

	hadSession := g.Token() != ""
	if !g.Validate() {
		if hadSession {
			reason := g.LogoutReason()
			cmds = append(cmds, func() tea.Msg {
				return ExpiredMsg{Reason: reason}
			})
		}
		return tea.Batch(cmds...)
	}

	if g.ShouldShowWarning() {
		g.MarkWarningShown()
		remaining := g.Remaining()
		cmds = append(cmds, func() tea.Msg {
			return WarningMsg{Remaining: remaining}
		})
	}

	return tea.Batch(cmds...)
}
