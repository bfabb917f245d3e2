// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the teller screens into a single Bubble Tea
// program: login, dashboard, the transfer wizard, transaction history,
// and settings, with the session guard enforcing the inactivity
// timeout across all of them.
//
// This file defines keyboard bindings shared across screens.
package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the global keyboard bindings. Screen-specific keys
// (quick amounts, checkbox toggle) live with their screens.
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding

	Dashboard key.Binding
	Transfer  key.Binding
	History   key.Binding
	Settings  key.Binding
	Logout    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dashboard"),
		),
		Transfer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "transfer"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "log out"),
		),
	}
}

// ShortHelp returns the bindings for the status bar's short help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Transfer, k.History, k.Help, k.Quit}
}

// FullHelp returns the grouped bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Submit, k.Back},
		{k.Dashboard, k.Transfer, k.History, k.Settings},
		{k.Help, k.Logout, k.Quit},
	}
}
