// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/config"
	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
)

// =============================================================================
// SETTINGS SCREEN
// =============================================================================

// settingsSection identifies which settings pane is open.
type settingsSection int

const (
	sectionMenu settingsSection = iota
	sectionProfile
	sectionPassword
)

var settingsMenu = []string{
	"Update Profile",
	"Change Password",
	"Export Statement (last 30 days)",
	"Toggle Theme",
	"Toggle Balance Visibility",
}

// settingsModel hosts profile updates, password changes, statement
// export, and the persisted UI preferences.
type settingsModel struct {
	section settingsSection
	cursor  int

	inputs []textinput.Model
	focus  int

	infoMsg string
	errMsg  string
	busy    bool

	cfg   *config.Config
	theme *styles.Theme
}

func newSettingsModel(theme *styles.Theme, cfg *config.Config) settingsModel {
	return settingsModel{theme: theme, cfg: cfg}
}

// openProfile builds the profile form prefilled from the current user.
func (m *settingsModel) openProfile(u *model.User) {
	mk := func(placeholder, value string, secret bool) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 128
		ti.Width = 36
		ti.SetValue(value)
		if secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		return ti
	}

	name, phone := "", ""
	var addr model.Address
	if u != nil {
		name, phone = u.Name, u.Phone
		if u.Address != nil {
			addr = *u.Address
		}
	}
	m.inputs = []textinput.Model{
		mk("name", name, false),
		mk("phone", phone, false),
		mk("street", addr.Street, false),
		mk("city", addr.City, false),
		mk("state", addr.State, false),
		mk("zip code", addr.ZipCode, false),
	}
	m.inputs[0].Focus()
	m.focus = 0
	m.section = sectionProfile
	m.errMsg = ""
}

// openPassword builds the change-password form.
func (m *settingsModel) openPassword() {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 128
		ti.Width = 36
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
		return ti
	}
	m.inputs = []textinput.Model{
		mk("current password"),
		mk("new password"),
		mk("confirm new password"),
	}
	m.inputs[0].Focus()
	m.focus = 0
	m.section = sectionPassword
	m.errMsg = ""
}

func (m *settingsModel) setFocus(i int) {
	if i < 0 {
		i = len(m.inputs) - 1
	}
	if i >= len(m.inputs) {
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

// =============================================================================
// UPDATE
// =============================================================================

func (m settingsModel) update(msg tea.Msg, client *api.Client, user *model.User) (settingsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.section != sectionMenu && len(m.inputs) > 0 {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.section == sectionMenu {
		return m.updateMenu(key, client, user)
	}
	return m.updateForm(key, client)
}

func (m settingsModel) updateMenu(key tea.KeyMsg, client *api.Client, user *model.User) (settingsModel, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(settingsMenu)-1 {
			m.cursor++
		}
	case "enter":
		switch m.cursor {
		case 0:
			m.openProfile(user)
		case 1:
			m.openPassword()
		case 2:
			if m.busy {
				return m, nil
			}
			m.busy = true
			end := time.Now()
			return m, statementCmd(client, end.AddDate(0, 0, -30), end)
		case 3:
			if m.cfg.UI.Theme == config.ThemeDark {
				m.cfg.UI.Theme = config.ThemeLight
			} else {
				m.cfg.UI.Theme = config.ThemeDark
			}
			if err := m.cfg.Save(); err != nil {
				m.errMsg = "Could not save settings."
			} else {
				m.infoMsg = "Theme set to " + m.cfg.UI.Theme + ". Takes effect on restart."
			}
		case 4:
			m.cfg.UI.ShowBalanceOnDashboard = !m.cfg.UI.ShowBalanceOnDashboard
			if err := m.cfg.Save(); err != nil {
				m.errMsg = "Could not save settings."
			} else if m.cfg.UI.ShowBalanceOnDashboard {
				m.infoMsg = "Balance shown on dashboard."
			} else {
				m.infoMsg = "Balance hidden on dashboard."
			}
		}
	}
	return m, nil
}

func (m settingsModel) updateForm(key tea.KeyMsg, client *api.Client) (settingsModel, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.section = sectionMenu
		m.inputs = nil
		m.errMsg = ""
		return m, nil
	case "tab", "down":
		m.setFocus(m.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m.submit(client)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
	return m, cmd
}

func (m settingsModel) submit(client *api.Client) (settingsModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	if m.section == sectionProfile {
		name := strings.TrimSpace(m.inputs[0].Value())
		if name == "" {
			m.errMsg = "Name is required"
			return m, nil
		}
		m.busy = true
		return m, updateProfileCmd(client, api.ProfileUpdate{
			Name:  name,
			Phone: strings.TrimSpace(m.inputs[1].Value()),
			Address: &model.Address{
				Street:  strings.TrimSpace(m.inputs[2].Value()),
				City:    strings.TrimSpace(m.inputs[3].Value()),
				State:   strings.TrimSpace(m.inputs[4].Value()),
				ZipCode: strings.TrimSpace(m.inputs[5].Value()),
			},
		})
	}

	current := m.inputs[0].Value()
	next := m.inputs[1].Value()
	confirm := m.inputs[2].Value()
	switch {
	case current == "" || next == "":
		m.errMsg = "All fields are required"
	case len(next) < 8:
		m.errMsg = "New password must be at least 8 characters"
	case next != confirm:
		m.errMsg = "Passwords do not match"
	default:
		m.busy = true
		m.errMsg = ""
		return m, changePasswordCmd(client, current, next)
	}
	return m, nil
}

// handleProfileSaved lands a profile update reply.
func (m *settingsModel) handleProfileSaved(msg profileSavedMsg) {
	m.busy = false
	if msg.err != nil {
		m.errMsg = "Could not update profile. Please try again."
		return
	}
	m.infoMsg = msg.message
	m.section = sectionMenu
	m.inputs = nil
}

// handlePasswordChanged lands a password change reply.
func (m *settingsModel) handlePasswordChanged(msg passwordChangedMsg) {
	m.busy = false
	if msg.err != nil {
		m.errMsg = "Could not change password. Check your current password."
		return
	}
	m.infoMsg = msg.message
	m.section = sectionMenu
	m.inputs = nil
}

// handleStatement lands a statement export reply.
func (m *settingsModel) handleStatement(msg statementMsg) {
	m.busy = false
	if msg.err != nil {
		m.errMsg = "Could not export statement."
		return
	}
	m.infoMsg = "Statement saved: " + msg.path
}

// =============================================================================
// VIEW
// =============================================================================

func (m settingsModel) view(width int) string {
	var parts []string
	parts = append(parts, m.theme.FormLabel.Render("Settings"), "")

	if m.section == sectionMenu {
		for i, item := range settingsMenu {
			if i == m.cursor {
				parts = append(parts, m.theme.TxRowSelected.Render(item))
			} else {
				parts = append(parts, m.theme.TxRow.Render(item))
			}
		}
	} else {
		labels := []string{"Name", "Phone", "Street", "City", "State", "Zip Code"}
		if m.section == sectionPassword {
			labels = []string{"Current Password", "New Password", "Confirm New Password"}
		}
		for i, in := range m.inputs {
			parts = append(parts, m.theme.FormLabel.Render(labels[i]))
			field := m.theme.FieldBlurred
			if i == m.focus {
				field = m.theme.FieldFocused
			}
			parts = append(parts, field.Render(in.View()))
		}
		parts = append(parts, "", m.theme.FormHint.Render("enter save · esc back"))
	}

	if m.infoMsg != "" {
		parts = append(parts, "", m.theme.SuccessBox.Render(m.infoMsg))
	}
	if m.errMsg != "" {
		parts = append(parts, "", m.theme.ErrorBox.Render(
			styles.StatusIndicators.Error+" "+m.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}
