// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// DASHBOARD SCREEN
// =============================================================================

// dashboardModel shows the balance card, quick stats, and the most
// recent transactions.
type dashboardModel struct {
	dashboard   *model.Dashboard
	showBalance bool
	errMsg      string
	loading     bool

	theme *styles.Theme
}

func newDashboardModel(theme *styles.Theme, showBalance bool) dashboardModel {
	return dashboardModel{theme: theme, showBalance: showBalance, loading: true}
}

// handleDashboard lands a dashboard reply.
func (m *dashboardModel) handleDashboard(msg dashboardMsg) {
	m.loading = false
	if msg.err != nil {
		m.errMsg = "Could not load dashboard. Please try again."
		return
	}
	m.errMsg = ""
	m.dashboard = msg.dashboard
}

// view renders the dashboard. The balance always comes from the
// session's user record, which the app keeps current after transfers.
func (m dashboardModel) view(u *model.User, width int) string {
	var parts []string

	if m.errMsg != "" {
		parts = append(parts, m.theme.ErrorBox.Render(m.errMsg))
	}

	if u != nil {
		balance := "••••••"
		if m.showBalance {
			balance = model.FormatCurrency(u.Balance)
		}
		card := lipgloss.JoinVertical(lipgloss.Left,
			m.theme.BalanceLabel.Render("Available Balance"),
			m.theme.BalanceAmount.Render(balance),
			"",
			m.theme.BalanceLabel.Render("Account "+util.MaskAccount(u.AccountNumber)),
		)
		parts = append(parts, m.theme.BalanceCard.Render(card))
	}

	if m.dashboard != nil {
		s := m.dashboard.Stats
		stats := lipgloss.JoinHorizontal(lipgloss.Top,
			m.statCell("Received", model.FormatCurrency(s.TotalReceived)),
			"   ",
			m.statCell("Spent", model.FormatCurrency(s.TotalSpent)),
			"   ",
			m.statCell("Net Worth", model.FormatCurrency(m.dashboard.NetWorth)),
			"   ",
			m.statCell("Credit Score", util.IntToString(m.dashboard.CreditScore)),
		)
		parts = append(parts, "", stats)

		if len(m.dashboard.RecentTransactions) > 0 {
			parts = append(parts, "", m.theme.FormLabel.Render("Recent Activity"))
			for i, tx := range m.dashboard.RecentTransactions {
				if i >= 5 {
					break
				}
				parts = append(parts, renderTxRow(m.theme, tx, width-6, false))
			}
		}
	} else if m.loading {
		parts = append(parts, "", m.theme.FormHint.Render("Loading account…"))
	}

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m dashboardModel) statCell(label, value string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.StatLabel.Render(label),
		m.theme.StatValue.Render(value),
	)
}

// renderTxRow renders one transaction line, shared by the dashboard
// and the history screen.
func renderTxRow(theme *styles.Theme, tx model.Transaction, width int, selected bool) string {
	amount := model.FormatCurrency(tx.Amount)
	var amt string
	if tx.IsDebitLike() {
		amt = theme.TxDebit.Render("-" + amount)
	} else {
		amt = theme.TxCredit.Render("+" + amount)
	}

	desc := tx.Description
	if desc == "" {
		desc = tx.Type
	}
	status := lipgloss.NewStyle().Foreground(styles.StatusColor(tx.Status)).Render(tx.Status)
	meta := theme.TxMeta.Render(tx.CreatedAt.Format("Jan 02"))

	descWidth := width - lipgloss.Width(amt) - lipgloss.Width(status) - lipgloss.Width(meta) - 6
	if descWidth < 8 {
		descWidth = 8
	}
	line := util.PadRight(util.TruncateString(desc, descWidth), descWidth) +
		"  " + meta + "  " + status + "  " + amt

	if selected {
		return theme.TxRowSelected.Render(line)
	}
	return theme.TxRow.Render(line)
}
