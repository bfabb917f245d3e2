// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/config"
	"github.com/jeranaias/teller-tui/internal/session"
	"github.com/jeranaias/teller-tui/internal/storage"
	"github.com/jeranaias/teller-tui/internal/transfer"
	"github.com/jeranaias/teller-tui/internal/ui/components"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// SCREENS
// =============================================================================

// screen identifies the active view.
type screen int

const (
	screenLogin screen = iota
	screenDashboard
	screenTransfer
	screenHistory
	screenSettings
	screenDenied
)

// protectedScreens require a live session to render.
var protectedScreens = map[screen]bool{
	screenDashboard: true,
	screenTransfer:  true,
	screenHistory:   true,
	screenSettings:  true,
}

// =============================================================================
// APP MODEL
// =============================================================================

// Deps bundles everything the app needs from main.
type Deps struct {
	Config    *config.Config
	Client    *api.Client
	Guard     *session.Guard
	Templates *storage.TemplateStore
	TxCache   *storage.TxCache
}

// App is the root Bubble Tea model. It routes messages to the active
// screen, keeps the session guard fed with activity, and owns the
// overlays that can cover any screen.
type App struct {
	cfg    *config.Config
	keys   KeyMap
	theme  *styles.Theme
	client *api.Client
	guard  *session.Guard

	templates *storage.TemplateStore
	txCache   *storage.TxCache

	screen    screen
	login     loginModel
	dashboard dashboardModel
	transfer  transferModel
	history   historyModel
	settings  settingsModel

	header    *components.Header
	statusBar *components.StatusBar
	timeout   components.TimeoutOverlay
	help      components.HelpOverlay

	// viewRoles declares per-screen required roles. A screen absent
	// from the map is open to any authenticated user.
	viewRoles map[screen][]string

	deniedMsg string
	width     int
	height    int
}

// New creates the root model. If a persisted session is still valid
// the app starts on the dashboard; otherwise on the login form.
func New(deps Deps) *App {
	theme := styles.NewTheme(deps.Config.UI.Theme)

	a := &App{
		cfg:       deps.Config,
		keys:      DefaultKeyMap(),
		theme:     theme,
		client:    deps.Client,
		guard:     deps.Guard,
		templates: deps.Templates,
		txCache:   deps.TxCache,
		login:     newLoginModel(theme),
		dashboard: newDashboardModel(theme, deps.Config.UI.ShowBalanceOnDashboard),
		history:   newHistoryModel(theme),
		settings:  newSettingsModel(theme, deps.Config),
		header:    components.NewHeader(theme),
		statusBar: components.NewStatusBar(theme),
		timeout:   components.NewTimeoutOverlay(theme),
		help:      components.NewHelpOverlay(theme),
		viewRoles: map[screen][]string{},
		screen:    screenLogin,
	}
	a.transfer = newTransferModel(theme, 0, "")

	if a.guard.Validate() {
		a.client.SetToken(a.guard.Token())
		a.enterSession()
	} else if reason := a.guard.LogoutReason(); reason != "" {
		a.login.infoMsg = reason
	}
	return a
}

// enterSession moves into the authenticated part of the app.
func (a *App) enterSession() {
	u := a.guard.User()
	if u != nil {
		a.header.SetUser(u.Name, u.AccountNumber)
		a.transfer = newTransferModel(a.theme, u.Balance, util.MaskAccount(u.AccountNumber))
	}
	a.screen = a.routeTo(screenDashboard)
}

// routeTo applies the role check before landing on a protected screen.
// A failed check is terminal: only navigation away or logout leaves it.
func (a *App) routeTo(target screen) screen {
	required := a.viewRoles[target]
	if len(required) == 0 {
		return target
	}
	if !a.guard.HasRequiredRoles(required) {
		a.deniedMsg = "You do not have access to this view."
		return screenDenied
	}
	return target
}

// handleLoggedOut returns to the login screen and clears everything
// the session owned.
func (a *App) handleLoggedOut(reason string) {
	a.client.ClearToken()
	a.header.ClearUser()
	a.timeout.Hide()
	a.login = newLoginModel(a.theme)
	a.login.infoMsg = reason
	a.transfer = newTransferModel(a.theme, 0, "")
	a.history = newHistoryModel(a.theme)
	a.dashboard = newDashboardModel(a.theme, a.cfg.UI.ShowBalanceOnDashboard)
	a.screen = screenLogin
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the session check loop and cursor blinking. A resumed
// session is re-verified against the server before it is trusted.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		session.TickCmd(a.cfg.CheckInterval()),
		textinput.Blink,
	}
	if a.guard.Token() != "" {
		cmds = append(cmds, verifySessionCmd(a.client))
	}
	if a.screen == screenDashboard {
		cmds = append(cmds, dashboardCmd(a.client))
	}
	return tea.Batch(cmds...)
}

// Update routes messages: session machinery first, overlays second,
// the active screen last.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		a.header.SetWidth(msg.Width)
		a.statusBar.SetWidth(msg.Width)
		a.timeout.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// Session machinery
	case session.TickMsg:
		cmd := a.guard.HandleTick(msg)
		if a.timeout.IsVisible() {
			a.timeout.UpdateTime(a.guard.Remaining())
		}
		a.updateCountdown()
		return a, cmd

	case ConfigReloadedMsg:
		a.cfg = msg.Config
		a.guard.SetConfig(session.Config{
			Timeout:       msg.Config.SessionTimeout(),
			WarningBefore: msg.Config.WarningThreshold(),
		})
		a.updateCountdown()
		return a, nil

	case session.WarningMsg:
		if a.screen != screenLogin {
			a.timeout.Show(msg.Remaining)
		}
		return a, nil

	case session.ExpiredMsg:
		a.handleLoggedOut(msg.Reason)
		return a, nil

	case components.ExtendSessionMsg:
		a.guard.Extend()
		a.updateCountdown()
		return a, nil

	case components.LogoutNowMsg:
		a.guard.ForceLogout("")
		a.handleLoggedOut("You have been logged out.")
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	return a.updateScreen(msg)
}

// updateKey handles a key press: quit, activity recording, overlays,
// global navigation, then the active screen.
func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Any keystroke on a protected screen is activity.
	if protectedScreens[a.screen] && !a.timeout.IsVisible() {
		a.guard.RecordActivity()
		a.updateCountdown()
	}

	// The timeout overlay owns the keyboard while visible.
	if a.timeout.IsVisible() {
		var cmd tea.Cmd
		a.timeout, cmd = a.timeout.Update(msg)
		return a, cmd
	}

	if a.help.IsVisible() {
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	}

	// Denied is terminal: navigation away or logout only.
	if a.screen == screenDenied {
		switch msg.String() {
		case "d", "esc":
			a.screen = a.routeTo(screenDashboard)
		case "ctrl+l":
			a.guard.ForceLogout("")
			a.handleLoggedOut("You have been logged out.")
		}
		return a, nil
	}

	// Global navigation, only where plain letters are not text input.
	if a.navKeysActive() {
		switch msg.String() {
		case "?":
			a.help.Show()
			return a, nil
		case "d":
			a.screen = a.routeTo(screenDashboard)
			return a, dashboardCmd(a.client)
		case "t":
			a.screen = a.routeTo(screenTransfer)
			if u := a.guard.User(); u != nil {
				a.transfer.wizard.SetBalance(u.Balance)
			}
			return a, nil
		case "h":
			a.screen = a.routeTo(screenHistory)
			a.history.loading = true
			return a, transactionsCmd(a.client, a.txCache, a.history.query())
		case "s":
			a.screen = a.routeTo(screenSettings)
			return a, nil
		case "ctrl+l":
			a.guard.ForceLogout("")
			a.handleLoggedOut("You have been logged out.")
			return a, nil
		}
	}

	return a.updateScreen(msg)
}

// navKeysActive reports whether single-letter navigation is safe: true
// on screens where no text field is capturing input.
func (a *App) navKeysActive() bool {
	switch a.screen {
	case screenDashboard:
		return true
	case screenHistory:
		return !a.history.searching && a.history.detail == nil
	case screenSettings:
		return a.settings.section == sectionMenu
	case screenTransfer:
		return a.transfer.wizard.Step() == transfer.StepResult
	default:
		return false
	}
}

// expireIfAuthError forces a logout when an async reply says the server
// rejected the token. The server's 401 outranks local validity math.
func (a *App) expireIfAuthError(err error) bool {
	if err == nil || !errors.Is(err, api.ErrAuthFailed) {
		return false
	}
	a.guard.ForceLogout("")
	a.handleLoggedOut("Session expired. Please login again.")
	return true
}

// updateScreen routes a message to the active screen and the async
// result messages to whichever screen owns them.
func (a *App) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionVerifiedMsg:
		// Fail closed: a persisted token the server will not vouch for
		// is discarded, whatever the error was.
		if msg.err != nil {
			a.guard.ForceLogout("")
			a.handleLoggedOut("Session expired. Please login again.")
			return a, nil
		}
		a.guard.SetUser(msg.user)
		a.header.SetUser(msg.user.Name, msg.user.AccountNumber)
		a.transfer.wizard.SetBalance(msg.user.Balance)
		return a, nil

	case authResultMsg:
		a.login.handleAuthResult(msg.result)
		if msg.result.Success {
			a.guard.Begin(msg.result.Token, msg.result.User)
			a.enterSession()
			return a, dashboardCmd(a.client)
		}
		return a, nil

	case dashboardMsg:
		if a.expireIfAuthError(msg.err) {
			return a, nil
		}
		a.dashboard.handleDashboard(msg)
		return a, nil

	case transferDoneMsg:
		if msg.outcome.AuthFailed {
			a.guard.ForceLogout("")
			a.handleLoggedOut("Session expired. Please login again.")
			return a, nil
		}
		cmd := a.transfer.handleDone(msg, a.client)
		if out := a.transfer.wizard.Outcome(); out != nil && out.HasBalance {
			// Balance is authoritative from the server reply; the next
			// dashboard refresh will confirm it.
			if u := a.guard.User(); u != nil {
				u.Balance = out.NewBalance
				a.guard.SetUser(u)
			}
		}
		return a, cmd

	case txDetailMsg:
		if a.expireIfAuthError(msg.err) {
			return a, nil
		}
		if a.screen == screenTransfer {
			if msg.err == nil {
				a.transfer.wizard.AttachTransaction(msg.tx)
			}
		} else {
			a.history.handleDetail(msg)
		}
		return a, nil

	case transactionsMsg:
		if a.expireIfAuthError(msg.err) {
			return a, nil
		}
		a.history.handleTransactions(msg)
		return a, nil

	case cancelTxMsg:
		if a.expireIfAuthError(msg.err) {
			return a, nil
		}
		a.history.handleCancel(msg)
		if msg.err == nil {
			return a, transactionsCmd(a.client, a.txCache, a.history.query())
		}
		return a, nil

	case profileSavedMsg:
		if a.expireIfAuthError(msg.err) {
			return a, nil
		}
		a.settings.handleProfileSaved(msg)
		if msg.err == nil && msg.user != nil {
			a.guard.SetUser(msg.user)
			a.header.SetUser(msg.user.Name, msg.user.AccountNumber)
		}
		return a, nil

	case passwordChangedMsg:
		if a.expireIfAuthError(msg.err) {
			return a, nil
		}
		a.settings.handlePasswordChanged(msg)
		return a, nil

	case statementMsg:
		if a.expireIfAuthError(msg.err) {
			return a, nil
		}
		a.settings.handleStatement(msg)
		return a, nil

	case receiptMsg:
		if a.screen == screenHistory {
			if msg.err != nil {
				a.history.errMsg = "Could not save receipt."
			} else {
				a.history.infoMsg = "Receipt saved: " + msg.path
			}
		} else if msg.err != nil {
			a.transfer.infoMsg = "Could not save receipt."
		} else {
			a.transfer.receiptPath = msg.path
		}
		return a, nil

	case templateSavedMsg:
		if msg.err != nil {
			a.transfer.infoMsg = "Could not save template."
		} else {
			a.transfer.infoMsg = "Transfer template saved!"
		}
		return a, nil
	}

	// Everything else goes to the active screen.
	var cmd tea.Cmd
	switch a.screen {
	case screenLogin:
		a.login, cmd = a.login.update(msg, a.keys, a.client)
	case screenTransfer:
		a.transfer, cmd = a.transfer.update(msg, a.client, a.templates)
	case screenHistory:
		a.history, cmd = a.history.update(msg, a.client, a.txCache)
	case screenSettings:
		a.settings, cmd = a.settings.update(msg, a.client, a.guard.User())
		// Settings edits the shared config in place; mirror the
		// visibility toggle so the dashboard picks it up immediately.
		a.dashboard.showBalance = a.cfg.UI.ShowBalanceOnDashboard
	}
	return a, cmd
}

// updateCountdown reflects the remaining session time in the status bar
// once inside the warning window.
func (a *App) updateCountdown() {
	if !protectedScreens[a.screen] {
		a.statusBar.SetCountdown(0, false)
		return
	}
	remaining := a.guard.Remaining()
	a.statusBar.SetCountdown(remaining, remaining <= a.cfg.WarningThreshold())
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen between the header and status bar,
// with overlays on top when visible.
func (a *App) View() string {
	if a.timeout.IsVisible() {
		return a.timeout.View()
	}
	if a.help.IsVisible() {
		return a.help.View()
	}

	width := a.width
	if width == 0 {
		width = 80
	}

	var body string
	switch a.screen {
	case screenLogin:
		body = a.login.view(width)
	case screenDashboard:
		body = a.dashboard.view(a.guard.User(), width)
	case screenTransfer:
		body = a.transfer.view(width)
	case screenHistory:
		body = a.history.view(width)
	case screenSettings:
		body = a.settings.view(width)
	case screenDenied:
		body = a.viewDenied(width)
	}

	a.statusBar.SetShortcuts(a.shortcuts())
	return lipgloss.JoinVertical(lipgloss.Left,
		a.header.View(),
		body,
		a.statusBar.View(),
	)
}

func (a *App) viewDenied(width int) string {
	box := lipgloss.JoinVertical(lipgloss.Center,
		styles.RenderError("Access Denied"),
		"",
		a.theme.FormHint.Render(a.deniedMsg),
		"",
		a.theme.FormHint.Render("d dashboard · C-l log out"),
	)
	return lipgloss.NewStyle().Padding(2, 4).MaxWidth(width).Render(
		a.theme.ResultFailed.Render(box))
}

// shortcuts returns the status bar hints for the active screen.
func (a *App) shortcuts() []components.Shortcut {
	if a.screen == screenLogin {
		return []components.Shortcut{
			{Key: "enter", Desc: "submit"},
			{Key: "C-r", Desc: "register"},
			{Key: "C-c", Desc: "quit"},
		}
	}
	return []components.Shortcut{
		{Key: "d", Desc: "dashboard"},
		{Key: "t", Desc: "transfer"},
		{Key: "h", Desc: "history"},
		{Key: "s", Desc: "settings"},
		{Key: "?", Desc: "help"},
	}
}

// SessionRemaining exposes the countdown for tests and the CLI status
// command.
func (a *App) SessionRemaining() time.Duration {
	return a.guard.Remaining()
}
