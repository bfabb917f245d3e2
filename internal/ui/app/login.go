// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN / REGISTER SCREEN
// =============================================================================

// loginMode selects between the sign-in and registration forms.
type loginMode int

const (
	modeSignIn loginMode = iota
	modeRegister
)

// Registration form field order, account page.
const (
	regName = iota
	regEmail
	regPassword
	regConfirm
	regFieldCount
)

// Registration form field order, contact page.
const (
	regPhone = iota
	regStreet
	regCity
	regState
	regZip
	regContactCount
)

// loginModel is the combined sign-in and registration screen. The
// registration form spans two pages: account credentials, then
// contact details.
type loginModel struct {
	mode    loginMode
	regPage int
	inputs  []textinput.Model
	focus   int

	account api.RegisterRequest

	errMsg  string
	infoMsg string
	busy    bool

	theme *styles.Theme
}

func newLoginModel(theme *styles.Theme) loginModel {
	m := loginModel{theme: theme}
	m.setMode(modeSignIn)
	return m
}

// setMode rebuilds the inputs for the selected form.
func (m *loginModel) setMode(mode loginMode) {
	m.mode = mode
	m.regPage = 0
	m.focus = 0
	m.errMsg = ""

	var fields []textinput.Model
	if mode == modeSignIn {
		fields = []textinput.Model{
			mkInput("email", false),
			mkInput("password", true),
		}
	} else {
		fields = []textinput.Model{
			mkInput("full name", false),
			mkInput("email", false),
			mkInput("password", true),
			mkInput("confirm password", true),
		}
	}
	fields[0].Focus()
	m.inputs = fields
}

// openContactPage swaps in the second registration page after the
// account fields validate.
func (m *loginModel) openContactPage() {
	m.regPage = 1
	m.focus = 0
	m.errMsg = ""
	m.inputs = []textinput.Model{
		mkInput("phone", false),
		mkInput("street", false),
		mkInput("city", false),
		mkInput("state", false),
		mkInput("zip code", false),
	}
	m.inputs[0].Focus()
}

func mkInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// setFocus moves keyboard focus to the given field.
func (m *loginModel) setFocus(i int) {
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

// validate checks the active form before submission.
func (m *loginModel) validate() string {
	get := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }

	if m.mode == modeSignIn {
		if get(0) == "" || m.inputs[1].Value() == "" {
			return "Email and password are required"
		}
		return ""
	}

	var errs []string
	if get(regName) == "" {
		errs = append(errs, "Name is required")
	}
	if get(regEmail) == "" || !strings.Contains(get(regEmail), "@") {
		errs = append(errs, "Please enter a valid email")
	}
	if len(m.inputs[regPassword].Value()) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	}
	if m.inputs[regPassword].Value() != m.inputs[regConfirm].Value() {
		errs = append(errs, "Passwords do not match")
	}
	return strings.Join(errs, ". ")
}

// submit advances the form: sign-in submits, registration page one
// validates and opens the contact page, page two sends the request.
func (m *loginModel) submit(client *api.Client) tea.Cmd {
	if m.busy {
		return nil
	}

	if m.mode == modeSignIn {
		if msg := m.validate(); msg != "" {
			m.errMsg = msg
			return nil
		}
		m.errMsg = ""
		m.busy = true
		return loginCmd(client, strings.TrimSpace(m.inputs[0].Value()), m.inputs[1].Value())
	}

	if m.regPage == 0 {
		if msg := m.validate(); msg != "" {
			m.errMsg = msg
			return nil
		}
		m.account = api.RegisterRequest{
			Name:     strings.TrimSpace(m.inputs[regName].Value()),
			Email:    strings.TrimSpace(m.inputs[regEmail].Value()),
			Password: m.inputs[regPassword].Value(),
		}
		m.openContactPage()
		return nil
	}

	phone := strings.TrimSpace(m.inputs[regPhone].Value())
	street := strings.TrimSpace(m.inputs[regStreet].Value())
	city := strings.TrimSpace(m.inputs[regCity].Value())
	state := strings.TrimSpace(m.inputs[regState].Value())
	zip := strings.TrimSpace(m.inputs[regZip].Value())

	var errs []string
	if phone == "" {
		errs = append(errs, "Phone number is required")
	}
	if street == "" {
		errs = append(errs, "Street address is required")
	}
	if city == "" {
		errs = append(errs, "City is required")
	}
	if state == "" {
		errs = append(errs, "State is required")
	}
	if zip == "" {
		errs = append(errs, "Zip code is required")
	}
	if len(errs) > 0 {
		m.errMsg = strings.Join(errs, ". ")
		return nil
	}

	req := m.account
	req.Phone = phone
	req.Address = &model.Address{
		Street:  street,
		City:    city,
		State:   state,
		ZipCode: zip,
	}

	m.errMsg = ""
	m.busy = true
	return registerCmd(client, req)
}

// handleAuthResult lands a login/register reply on this screen.
func (m *loginModel) handleAuthResult(res api.AuthResult) {
	m.busy = false
	if !res.Success {
		m.errMsg = res.Message
		return
	}
	m.errMsg = ""
}

// update handles keys and input editing for the form.
func (m loginModel) update(msg tea.Msg, keys KeyMap, client *api.Client) (loginModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
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
			return m, m.submit(client)
		case "esc":
			if m.mode == modeRegister && m.regPage == 1 {
				m.setMode(modeRegister)
				m.inputs[regName].SetValue(m.account.Name)
				m.inputs[regEmail].SetValue(m.account.Email)
				m.inputs[regPassword].SetValue(m.account.Password)
				m.inputs[regConfirm].SetValue(m.account.Password)
				return m, nil
			}
		case "ctrl+r":
			if m.mode == modeSignIn {
				m.setMode(modeRegister)
			} else {
				m.setMode(modeSignIn)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// view renders the form.
func (m loginModel) view(width int) string {
	var parts []string

	title := "Sign In"
	switchHint := "ctrl+r register"
	labels := []string{"Email", "Password"}
	if m.mode == modeRegister {
		title = "Create Account"
		switchHint = "ctrl+r sign in"
		labels = []string{"Name", "Email", "Password", "Confirm Password"}
		if m.regPage == 1 {
			title = "Create Account · Contact Details"
			switchHint = "esc back"
			labels = []string{"Phone", "Street", "City", "State", "Zip Code"}
		}
	}
	parts = append(parts, m.theme.HeaderTitle.Render(title), "")
	for i, in := range m.inputs {
		parts = append(parts, m.theme.FormLabel.Render(labels[i]))
		field := m.theme.FieldBlurred
		if i == m.focus {
			field = m.theme.FieldFocused
		}
		parts = append(parts, field.Render(in.View()))
	}

	if m.infoMsg != "" {
		parts = append(parts, "", m.theme.SuccessBox.Render(m.infoMsg))
	}
	if m.errMsg != "" {
		parts = append(parts, "", m.theme.ErrorBox.Render(styles.StatusIndicators.Error+" "+m.errMsg))
	}

	parts = append(parts, "",
		m.theme.FormHint.Render("enter submit · tab next · "+switchHint))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(width).Render(form)
}
