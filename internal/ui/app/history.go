// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/receipt"
	"github.com/jeranaias/teller-tui/internal/storage"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// TRANSACTION HISTORY SCREEN
// =============================================================================

const historyPageSize = 20

// Status filter cycle for the history screen.
var statusFilters = []string{"", model.StatusCompleted, model.StatusPending, model.StatusScheduled, model.StatusFailed}

// Type filter cycle: all, money out, money in.
var typeFilters = []string{"", model.TypeDebit, model.TypeCredit}

// historyModel lists transactions with paging, a status filter, and
// search, and shows a detail pane for the selected row.
type historyModel struct {
	txns      []model.Transaction
	cursor    int
	page      int
	filterIdx int
	typeIdx   int
	ascending bool
	fromCache bool

	search    textinput.Model
	searching bool

	detail  *model.Transaction
	infoMsg string
	errMsg  string
	loading bool

	theme *styles.Theme
}

func newHistoryModel(theme *styles.Theme) historyModel {
	search := textinput.New()
	search.Placeholder = "search description"
	search.CharLimit = 64
	search.Width = 30
	return historyModel{search: search, theme: theme, loading: true}
}

// query builds the fetch parameters for the current page and filters.
func (m *historyModel) query() api.TransactionQuery {
	return api.TransactionQuery{
		Page:   m.page + 1,
		Limit:  historyPageSize,
		Status: statusFilters[m.filterIdx],
		Type:   typeFilters[m.typeIdx],
		Search: m.search.Value(),
	}
}

// rows returns the transactions in display order. The server sends
// newest first; the sort toggle flips that for reading old-to-new.
func (m *historyModel) rows() []model.Transaction {
	if !m.ascending {
		return m.txns
	}
	out := make([]model.Transaction, len(m.txns))
	for i, tx := range m.txns {
		out[len(m.txns)-1-i] = tx
	}
	return out
}

// handleTransactions lands a history page.
func (m *historyModel) handleTransactions(msg transactionsMsg) {
	m.loading = false
	if msg.err != nil {
		m.errMsg = "Could not load transactions. Please try again."
		return
	}
	m.errMsg = ""
	m.txns = msg.txns
	m.fromCache = msg.fromCache
	if m.cursor >= len(m.txns) {
		m.cursor = 0
	}
}

// handleDetail lands a transaction detail fetch.
func (m *historyModel) handleDetail(msg txDetailMsg) {
	if msg.err != nil {
		m.errMsg = "Could not load transaction details."
		return
	}
	m.detail = msg.tx
}

// handleCancel lands a cancellation outcome and refreshes.
func (m *historyModel) handleCancel(msg cancelTxMsg) {
	if msg.err != nil {
		m.errMsg = "Could not cancel the transaction."
		return
	}
	m.infoMsg = msg.message
	m.detail = nil
}

// =============================================================================
// UPDATE
// =============================================================================

func (m historyModel) update(msg tea.Msg, client *api.Client, cache *storage.TxCache) (historyModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.searching {
		switch key.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			m.loading = true
			return m, transactionsCmd(client, cache, m.query())
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(key)
		return m, cmd
	}

	// Detail pane open: limited keys.
	if m.detail != nil {
		switch key.String() {
		case "esc", "q":
			m.detail = nil
		case "x":
			if m.detail.Status == model.StatusScheduled {
				return m, cancelTxCmd(client, m.detail.TransactionID)
			}
		case "r":
			return m, receiptCmd(&receipt.Receipt{
				Transaction: m.detail,
				FromAccount: util.MaskAccount(m.detail.FromAccount),
				GeneratedAt: time.Now(),
			}, false)
		}
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.txns)-1 {
			m.cursor++
		}
	case "enter":
		if rows := m.rows(); m.cursor < len(rows) {
			tx := rows[m.cursor]
			m.detail = &tx
			return m, txDetailCmd(client, tx.TransactionID)
		}
	case "left", "p":
		if m.page > 0 {
			m.page--
			m.loading = true
			return m, transactionsCmd(client, cache, m.query())
		}
	case "right", "n":
		if len(m.txns) == historyPageSize {
			m.page++
			m.loading = true
			return m, transactionsCmd(client, cache, m.query())
		}
	case "f":
		m.filterIdx = (m.filterIdx + 1) % len(statusFilters)
		m.page = 0
		m.loading = true
		return m, transactionsCmd(client, cache, m.query())
	case "y":
		m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
		m.page = 0
		m.loading = true
		return m, transactionsCmd(client, cache, m.query())
	case "o":
		m.ascending = !m.ascending
		m.cursor = 0
	case "/":
		m.searching = true
		m.search.Focus()
	}
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

func (m historyModel) view(width int) string {
	if m.detail != nil {
		return m.viewDetail(width)
	}

	var parts []string
	title := "Transactions"
	if f := statusFilters[m.filterIdx]; f != "" {
		title += " · " + f
	}
	if f := typeFilters[m.typeIdx]; f != "" {
		title += " · " + f
	}
	if m.fromCache {
		title += " · offline copy"
	}
	parts = append(parts, m.theme.FormLabel.Render(title))

	if m.searching || m.search.Value() != "" {
		style := m.theme.FieldBlurred
		if m.searching {
			style = m.theme.FieldFocused
		}
		parts = append(parts, style.Render(m.search.View()))
	}
	parts = append(parts, "")

	switch {
	case m.errMsg != "":
		parts = append(parts, m.theme.ErrorBox.Render(m.errMsg))
	case m.loading:
		parts = append(parts, m.theme.FormHint.Render("Loading…"))
	case len(m.txns) == 0:
		parts = append(parts, m.theme.FormHint.Render("No transactions found."))
	default:
		for i, tx := range m.rows() {
			parts = append(parts, renderTxRow(m.theme, tx, width-6, i == m.cursor))
		}
	}

	if m.infoMsg != "" {
		parts = append(parts, "", m.theme.SuccessBox.Render(m.infoMsg))
	}

	parts = append(parts, "", m.theme.FormHint.Render(
		"enter details · f status · y type · o order · / search · p/n page"))

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m historyModel) viewDetail(width int) string {
	tx := m.detail

	statusStyle := lipgloss.NewStyle().Foreground(styles.StatusColor(tx.Status))
	lines := []string{
		m.theme.FormLabel.Render("Transaction Detail"),
		"",
		"ID           " + tx.TransactionID,
		"Type         " + tx.Type,
		"Status       " + statusStyle.Render(tx.Status),
		"Amount       " + model.FormatCurrency(tx.Amount),
		"From         " + util.MaskAccount(tx.FromAccount),
		"To           " + tx.ToAccount,
		"Description  " + orDash(tx.Description),
		"Created      " + tx.CreatedAt.Format("2006-01-02 15:04"),
	}

	hint := "r save receipt · esc back"
	if tx.Status == model.StatusScheduled {
		hint = "x cancel transfer · r save receipt · esc back"
	}
	lines = append(lines, "", m.theme.FormHint.Render(hint))

	if m.infoMsg != "" {
		lines = append(lines, "", m.theme.SuccessBox.Render(m.infoMsg))
	}
	if m.errMsg != "" {
		lines = append(lines, "", m.theme.ErrorBox.Render(m.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}
