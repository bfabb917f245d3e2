// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the teller TUI.

This package defines the color palette and all Lip Gloss styles used
throughout the application. All colors use AdaptiveColor for automatic
light/dark terminal detection; the configured theme only pins which
background the adaptive pairs resolve against.

# Color System (colors.go)

  - Blue - Primary accent for focused fields and selections
  - Cyan - Brand color for balances and key figures
  - Emerald - Success states, credits, completed transfers
  - Amber - Warnings, pending states, the session countdown
  - Rose - Errors, debits, failed transfers

# Theme (theme.go)

Theme bundles every style the screens need: header, forms, dashboard
cards, transaction rows, wizard steps, status bar, and message boxes.
Construct one with NewTheme at startup and share it across screens.

ACCESSIBILITY: status output always pairs color with an ASCII shape
indicator ([OK], [X], [!]) so state changes read without color.
*/
package styles
