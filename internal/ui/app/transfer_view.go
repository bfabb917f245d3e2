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
	"github.com/jeranaias/teller-tui/internal/transfer"
	"github.com/jeranaias/teller-tui/internal/ui/components"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// TRANSFER WIZARD SCREEN
// =============================================================================

// Details form field order.
const (
	fieldToAccount = iota
	fieldAmount
	fieldDescription
	fieldSchedule
	fieldCount
)

// transferModel drives the three-step wizard screen around the
// transfer.Wizard state machine.
type transferModel struct {
	wizard *transfer.Wizard
	steps  *components.StepIndicator

	inputs []textinput.Model
	focus  int
	spin   components.Spinner

	templates    []storage.Template
	showTpls     bool
	tplCursor    int
	infoMsg      string
	receiptPath  string
	maskedFrom   string

	theme *styles.Theme
}

func newTransferModel(theme *styles.Theme, balance float64, maskedFrom string) transferModel {
	m := transferModel{
		wizard:     transfer.NewWizard(balance),
		steps:      components.NewStepIndicator(theme, "Details", "Confirm", "Result"),
		spin:       components.NewSpinner(theme),
		maskedFrom: maskedFrom,
		theme:      theme,
	}
	m.inputs = m.makeInputs()
	m.setFocus(0)
	return m
}

func (m *transferModel) makeInputs() []textinput.Model {
	to := textinput.New()
	to.Placeholder = "10-digit account number"
	to.CharLimit = transfer.AccountNumberLength
	to.Width = 30

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 12
	amount.Width = 30

	desc := textinput.New()
	desc.Placeholder = "description (optional)"
	desc.CharLimit = 120
	desc.Width = 30

	when := textinput.New()
	when.Placeholder = "YYYY-MM-DD (optional, schedules the transfer)"
	when.CharLimit = 10
	when.Width = 30

	return []textinput.Model{to, amount, desc, when}
}

func (m *transferModel) setFocus(i int) {
	if i < 0 {
		i = fieldCount - 1
	}
	if i >= fieldCount {
		i = 0
	}
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// syncWizard pushes the current input values into the state machine.
func (m *transferModel) syncWizard() {
	m.wizard.SetDetails(
		m.inputs[fieldToAccount].Value(),
		m.inputs[fieldAmount].Value(),
		m.inputs[fieldDescription].Value(),
	)
	m.wizard.SetScheduleDate(m.inputs[fieldSchedule].Value())
}

// syncInputs pulls wizard state back into the inputs, used after a
// template fills the form.
func (m *transferModel) syncInputs() {
	req := m.wizard.Request()
	m.inputs[fieldToAccount].SetValue(req.ToAccount)
	m.inputs[fieldAmount].SetValue(req.Amount)
	m.inputs[fieldDescription].SetValue(req.Description)
	m.inputs[fieldSchedule].SetValue(req.ScheduleFor)
}

// reset starts a fresh transfer keeping the latest balance.
func (m *transferModel) reset() {
	m.wizard.Reset()
	m.inputs = m.makeInputs()
	m.setFocus(0)
	m.infoMsg = ""
	m.receiptPath = ""
	m.showTpls = false
}

// =============================================================================
// UPDATE
// =============================================================================

// update handles keys for the active wizard step. The returned command
// is the transfer submission when one starts.
func (m transferModel) update(msg tea.Msg, client *api.Client, tplStore *storage.TemplateStore) (transferModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if cmd := m.spin.Update(msg); cmd != nil {
			return m, cmd
		}
		var cmd tea.Cmd
		if m.wizard.Step() == transfer.StepDetails && !m.showTpls {
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			m.syncWizard()
		}
		return m, cmd
	}

	if m.showTpls {
		return m.updateTemplatePicker(key)
	}

	switch m.wizard.Step() {
	case transfer.StepDetails:
		return m.updateDetails(key, tplStore)
	case transfer.StepConfirm:
		return m.updateConfirm(key, client)
	default:
		return m.updateResult(key, client, tplStore)
	}
}

func (m transferModel) updateDetails(key tea.KeyMsg, tplStore *storage.TemplateStore) (transferModel, tea.Cmd) {
	switch key.String() {
	case "tab", "down":
		m.setFocus(m.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil
	case "enter":
		m.syncWizard()
		m.wizard.Next()
		return m, nil
	case "ctrl+t":
		m.templates = tplStore.List()
		if len(m.templates) > 0 {
			m.showTpls = true
			m.tplCursor = 0
		}
		return m, nil
	}

	// Quick amounts only act while the amount field is focused, so
	// digits still type normally into the account field.
	if m.focus == fieldAmount && m.inputs[fieldAmount].Value() == "" {
		switch key.String() {
		case "1", "2", "3", "4":
			idx := int(key.String()[0] - '1')
			m.wizard.SetQuickAmount(transfer.QuickAmounts[idx])
			m.syncInputs()
			return m, nil
		case "m":
			m.wizard.SetMaxAmount()
			m.syncInputs()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
	m.syncWizard()
	return m, cmd
}

func (m transferModel) updateConfirm(key tea.KeyMsg, client *api.Client) (transferModel, tea.Cmd) {
	switch key.String() {
	case " ", "space":
		m.wizard.ToggleConfirmed()
		return m, nil
	case "esc", "backspace":
		if m.wizard.Back() {
			m.syncInputs()
		}
		return m, nil
	case "enter":
		if !m.wizard.Next() {
			return m, nil
		}
		attempt, ok := m.wizard.BeginSubmit()
		if !ok {
			return m, nil
		}
		if when, scheduled := m.wizard.ParsedSchedule(); scheduled {
			return m, tea.Batch(
				m.spin.Start("Scheduling transfer..."),
				scheduleTransferCmd(client, attempt, m.wizard.Request(), m.wizard.ParsedAmount(), when),
			)
		}
		return m, tea.Batch(
			m.spin.Start("Sending transfer..."),
			transferCmd(client, attempt, m.wizard.Request(), m.wizard.ParsedAmount()),
		)
	}
	return m, nil
}

func (m transferModel) updateResult(key tea.KeyMsg, client *api.Client, tplStore *storage.TemplateStore) (transferModel, tea.Cmd) {
	outcome := m.wizard.Outcome()
	switch key.String() {
	case "n", "enter":
		m.reset()
		return m, nil
	case "r":
		if outcome != nil && outcome.Transaction != nil {
			return m, receiptCmd(&receipt.Receipt{
				Transaction: outcome.Transaction,
				FromAccount: m.maskedFrom,
				GeneratedAt: time.Now(),
			}, false)
		}
	case "S":
		if outcome != nil {
			return m, saveTemplateCmd(tplStore, m.wizard.Request())
		}
	}
	return m, nil
}

// handleDone lands a submission outcome; stale attempts are dropped by
// the wizard itself. Returns the fetch for fuller details on success.
func (m *transferModel) handleDone(msg transferDoneMsg, client *api.Client) tea.Cmd {
	if !m.wizard.CompleteSubmit(msg.attempt, msg.outcome) {
		return nil
	}
	m.spin.Stop()
	if out := m.wizard.Outcome(); out != nil && out.Transaction != nil && out.Transaction.TransactionID != "" {
		return txDetailCmd(client, out.Transaction.TransactionID)
	}
	return nil
}

func (m transferModel) updateTemplatePicker(key tea.KeyMsg) (transferModel, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.tplCursor > 0 {
			m.tplCursor--
		}
	case "down", "j":
		if m.tplCursor < len(m.templates)-1 {
			m.tplCursor++
		}
	case "enter":
		tpl := m.templates[m.tplCursor]
		m.wizard.ApplyTemplate(tpl.ToAccount, tpl.Amount, tpl.Description)
		m.syncInputs()
		m.showTpls = false
	case "esc":
		m.showTpls = false
	}
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

func (m transferModel) view(width int) string {
	var parts []string
	parts = append(parts, m.steps.View(int(m.wizard.Step())), "")

	if m.showTpls {
		parts = append(parts, m.viewTemplates())
	} else {
		switch m.wizard.Step() {
		case transfer.StepDetails:
			parts = append(parts, m.viewDetails())
		case transfer.StepConfirm:
			parts = append(parts, m.viewConfirm())
		default:
			parts = append(parts, m.viewResult())
		}
	}

	if m.wizard.Error() != "" {
		parts = append(parts, "", m.theme.ErrorBox.Render(
			styles.StatusIndicators.Error+" "+m.wizard.Error()))
	}
	if m.infoMsg != "" {
		parts = append(parts, "", m.theme.SuccessBox.Render(m.infoMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m transferModel) viewDetails() string {
	var parts []string

	parts = append(parts,
		m.theme.BalanceLabel.Render("Available Balance"),
		m.theme.BalanceAmount.Render(model.FormatCurrency(m.wizard.Balance())),
		"")

	labels := []string{"Send To", "Amount", "Description", "Schedule For"}
	for i, in := range m.inputs {
		parts = append(parts, m.theme.FormLabel.Render(labels[i]))
		field := m.theme.FieldBlurred
		if i == m.focus {
			field = m.theme.FieldFocused
		}
		parts = append(parts, field.Render(in.View()))
	}

	parts = append(parts, "", m.theme.FormHint.Render(
		"quick amounts 1-4 · m max · ctrl+t templates · enter continue"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m transferModel) viewConfirm() string {
	req := m.wizard.Request()

	check := m.theme.CheckboxBlank.Render("[ ] I confirm this transfer")
	if req.Confirmed {
		check = m.theme.CheckboxChecked.Render("[x] I confirm this transfer")
	}

	rows := []string{
		m.theme.FormLabel.Render("Review Transfer"),
		"",
		"From         " + m.maskedFrom,
		"To           " + req.ToAccount,
		"Amount       " + m.theme.BalanceAmount.Render(model.FormatCurrency(m.wizard.ParsedAmount())),
		"Description  " + orDash(req.Description),
	}
	if req.ScheduleFor != "" {
		rows = append(rows, "Scheduled    "+req.ScheduleFor)
	}
	rows = append(rows,
		"",
		check,
		"",
		m.theme.FormHint.Render("space confirm · enter send · esc back"),
	)
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)

	if m.wizard.Submitting() {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.spin.View())
	}
	return m.theme.ConfirmBox.Render(body)
}

func (m transferModel) viewResult() string {
	out := m.wizard.Outcome()
	if out == nil {
		return ""
	}

	title := "Transfer Complete"
	if out.Transaction != nil && out.Transaction.Status == model.StatusScheduled {
		title = "Transfer Scheduled"
	}

	var lines []string
	lines = append(lines, styles.RenderSuccess(title), "")
	if out.Transaction != nil {
		tx := out.Transaction
		lines = append(lines,
			"Transaction  "+tx.TransactionID,
			"To           "+tx.ToAccount,
			"Amount       "+model.FormatCurrency(tx.Amount),
			"Status       "+tx.Status,
		)
	}
	if out.HasBalance {
		lines = append(lines, "New Balance  "+model.FormatCurrency(out.NewBalance))
	}
	if m.receiptPath != "" {
		lines = append(lines, "", m.theme.FormHint.Render("Receipt saved: "+m.receiptPath))
	}
	lines = append(lines, "",
		m.theme.FormHint.Render("n new transfer · r save receipt · S save template"))

	return m.theme.ResultBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m transferModel) viewTemplates() string {
	var lines []string
	lines = append(lines, m.theme.FormLabel.Render("Saved Templates"), "")
	for i, tpl := range m.templates {
		label := tpl.Name + "  " + util.PadLeft("$"+tpl.Amount, 10)
		if i == m.tplCursor {
			lines = append(lines, m.theme.TxRowSelected.Render(label))
		} else {
			lines = append(lines, m.theme.TxRow.Render(label))
		}
	}
	lines = append(lines, "", m.theme.FormHint.Render("enter use · esc close"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// =============================================================================
// HELPERS
// =============================================================================

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
