// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable UI components for the teller
TUI: the header bar, status bar, loading spinner, wizard step
indicator, the session timeout overlay, and the help overlay.

Components hold their own state and expose View methods; the screen
models in ui/app compose them. None of them perform I/O.
*/
package components
