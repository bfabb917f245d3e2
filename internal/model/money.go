// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain records exchanged with the banking API.
package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// usdPrinter formats money values the way the account currency demands.
// Shared and read-only, safe for concurrent use.
var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as a US dollar string with grouping and
// two fraction digits, e.g. 1234.5 -> "$1,234.50".
func FormatCurrency(amount float64) string {
	return usdPrinter.Sprintf("$%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
