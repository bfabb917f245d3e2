// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/config"
	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/session"
	"github.com/jeranaias/teller-tui/internal/storage"
	"github.com/jeranaias/teller-tui/internal/transfer"
	"github.com/jeranaias/teller-tui/internal/ui/components"
)

func testUser() *model.User {
	return &model.User{
		ID:            "usr-1",
		Name:          "Sarah Connor",
		Email:         "sarah@example.com",
		AccountNumber: "1234567890",
		Balance:       2500.00,
		Status:        "active",
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	dir := t.TempDir()
	state, err := storage.NewStateStore(dir)
	if err != nil {
		t.Fatalf("state store: %v", err)
	}
	tpls, err := storage.NewTemplateStore(dir)
	if err != nil {
		t.Fatalf("template store: %v", err)
	}
	cache, err := storage.OpenTxCache(dir)
	if err != nil {
		t.Fatalf("tx cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	return New(Deps{
		Config:    config.DefaultConfig(),
		Client:    api.NewClient("http://127.0.0.1:0"),
		Guard:     session.NewGuard(session.DefaultConfig(), state),
		Templates: tpls,
		TxCache:   cache,
	})
}

// newSignedInApp returns an app with an authenticated session already
// established, sitting on the dashboard.
func newSignedInApp(t *testing.T) *App {
	t.Helper()
	a := newTestApp(t)
	a.guard.Begin("tok-1", testUser())
	a.enterSession()
	return a
}

func keyPress(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartsOnLoginWithoutSession(t *testing.T) {
	a := newTestApp(t)
	if a.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", a.screen)
	}
}

func TestResumesPersistedSession(t *testing.T) {
	a := newSignedInApp(t)
	if a.screen != screenDashboard {
		t.Fatalf("expected dashboard, got %d", a.screen)
	}
	if u := a.guard.User(); u == nil || u.Name != "Sarah Connor" {
		t.Fatalf("session user not carried into app")
	}
}

func TestLoginSuccessRoutesToDashboard(t *testing.T) {
	a := newTestApp(t)

	_, cmd := a.Update(authResultMsg{result: api.AuthResult{
		Success: true,
		Token:   "tok-9",
		User:    testUser(),
	}})

	if a.screen != screenDashboard {
		t.Fatalf("expected dashboard after login, got %d", a.screen)
	}
	if a.guard.Token() != "tok-9" {
		t.Fatalf("guard token = %q", a.guard.Token())
	}
	if cmd == nil {
		t.Fatal("expected a dashboard fetch command")
	}
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	a := newTestApp(t)

	a.Update(authResultMsg{result: api.AuthResult{
		Success: false,
		Message: "Invalid email or password",
	}})

	if a.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", a.screen)
	}
	if a.login.errMsg != "Invalid email or password" {
		t.Fatalf("errMsg = %q", a.login.errMsg)
	}
}

func TestSessionExpiryReturnsToLoginWithReason(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(session.ExpiredMsg{Reason: "Session expired. Please login again."})

	if a.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", a.screen)
	}
	if a.login.infoMsg != "Session expired. Please login again." {
		t.Fatalf("infoMsg = %q", a.login.infoMsg)
	}
	if a.guard.Token() != "" {
		t.Fatal("token should be cleared on expiry")
	}
}

func TestWarningShowsTimeoutOverlay(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(session.WarningMsg{Remaining: 90 * time.Second})

	if !a.timeout.IsVisible() {
		t.Fatal("timeout overlay should be visible after warning")
	}
}

func TestWarningIgnoredOnLoginScreen(t *testing.T) {
	a := newTestApp(t)

	a.Update(session.WarningMsg{Remaining: 90 * time.Second})

	if a.timeout.IsVisible() {
		t.Fatal("overlay must not appear outside a session")
	}
}

func TestEscapeDismissesOverlayAndExtends(t *testing.T) {
	a := newSignedInApp(t)
	a.Update(session.WarningMsg{Remaining: 90 * time.Second})

	_, cmd := a.Update(keyPress("esc"))
	if a.timeout.IsVisible() {
		t.Fatal("esc should dismiss the overlay")
	}
	if cmd == nil {
		t.Fatal("expected an extend message command")
	}
	if _, ok := cmd().(components.ExtendSessionMsg); !ok {
		t.Fatal("expected ExtendSessionMsg from overlay")
	}
}

func TestLogoutNowReturnsToLogin(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(components.LogoutNowMsg{})

	if a.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", a.screen)
	}
	if a.guard.Token() != "" {
		t.Fatal("token should be cleared")
	}
}

func TestNavigationKeys(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(keyPress("t"))
	if a.screen != screenTransfer {
		t.Fatalf("t should open transfer, got %d", a.screen)
	}

	// Plain letters are field input on the transfer details step, so
	// return via the dashboard key only after leaving the wizard.
	a.screen = screenDashboard

	a.Update(keyPress("h"))
	if a.screen != screenHistory {
		t.Fatalf("h should open history, got %d", a.screen)
	}
	if !a.history.loading {
		t.Fatal("history should be loading after navigation")
	}

	a.Update(keyPress("s"))
	if a.screen != screenSettings {
		t.Fatalf("s should open settings, got %d", a.screen)
	}

	a.Update(keyPress("d"))
	if a.screen != screenDashboard {
		t.Fatalf("d should return to dashboard, got %d", a.screen)
	}
}

func TestCtrlLLogsOut(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(keyPress("ctrl+l"))

	if a.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", a.screen)
	}
}

func TestRoleGatingDeniesWithoutMatchingRole(t *testing.T) {
	a := newSignedInApp(t)
	a.viewRoles[screenSettings] = []string{"admin"}

	a.Update(keyPress("s"))

	if a.screen != screenDenied {
		t.Fatalf("expected denied state, got %d", a.screen)
	}

	// Denied is terminal until the user navigates away.
	a.Update(keyPress("t"))
	if a.screen != screenDenied {
		t.Fatal("denied state should ignore other keys")
	}
	a.Update(keyPress("d"))
	if a.screen != screenDashboard {
		t.Fatalf("d should leave denied state, got %d", a.screen)
	}
}

func TestRoleGatingGrantsOnIntersection(t *testing.T) {
	a := newTestApp(t)
	u := testUser()
	u.Roles = []string{"customer", "premium"}
	a.guard.Begin("tok-1", u)
	a.enterSession()
	a.viewRoles[screenSettings] = []string{"premium", "admin"}

	a.Update(keyPress("s"))

	if a.screen != screenSettings {
		t.Fatalf("expected settings, got %d", a.screen)
	}
}

func TestTransferSuccessUpdatesSessionBalance(t *testing.T) {
	a := newSignedInApp(t)
	a.screen = screenTransfer

	w := a.transfer.wizard
	w.SetDetails("9876543210", "500", "Rent")
	if !w.Next() {
		t.Fatalf("details should validate: %s", w.Error())
	}
	w.ToggleConfirmed()
	attempt, ok := w.BeginSubmit()
	if !ok {
		t.Fatal("submit should start")
	}

	a.Update(transferDoneMsg{attempt: attempt, outcome: transfer.Outcome{
		Success:    true,
		Message:    "Transfer completed",
		NewBalance: 2000.00,
		HasBalance: true,
	}})

	if w.Step() != transfer.StepResult {
		t.Fatalf("wizard step = %v", w.Step())
	}
	if u := a.guard.User(); u.Balance != 2000.00 {
		t.Fatalf("session balance = %v, want 2000", u.Balance)
	}
}

func TestStaleTransferReplyLeavesBalanceAlone(t *testing.T) {
	a := newSignedInApp(t)
	a.screen = screenTransfer

	w := a.transfer.wizard
	w.SetDetails("9876543210", "500", "")
	w.Next()
	w.ToggleConfirmed()
	attempt, _ := w.BeginSubmit()
	w.Reset()

	a.Update(transferDoneMsg{attempt: attempt, outcome: transfer.Outcome{
		Success:    true,
		NewBalance: 1.00,
		HasBalance: true,
	}})

	if u := a.guard.User(); u.Balance != 2500.00 {
		t.Fatalf("stale reply must not touch balance, got %v", u.Balance)
	}
}

func TestProfileSaveUpdatesHeaderUser(t *testing.T) {
	a := newSignedInApp(t)
	a.screen = screenSettings

	updated := testUser()
	updated.Name = "Sarah Reese"
	a.Update(profileSavedMsg{user: updated, message: "Profile updated"})

	if u := a.guard.User(); u.Name != "Sarah Reese" {
		t.Fatalf("session user name = %q", u.Name)
	}
}

func TestCtrlCQuits(t *testing.T) {
	a := newTestApp(t)

	_, cmd := a.Update(keyPress("ctrl+c"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestRegisterValidatesAccountPage(t *testing.T) {
	m := newLoginModel(nil)
	m.setMode(modeRegister)
	m.inputs[regName].SetValue("Sarah Connor")
	m.inputs[regEmail].SetValue("not-an-email")
	m.inputs[regPassword].SetValue("short")
	m.inputs[regConfirm].SetValue("different")

	if cmd := m.submit(nil); cmd != nil {
		t.Fatal("invalid page must not advance")
	}
	want := "Please enter a valid email. Password must be at least 8 characters. Passwords do not match"
	if m.errMsg != want {
		t.Fatalf("errMsg = %q", m.errMsg)
	}
	if m.regPage != 0 {
		t.Fatal("should stay on the account page")
	}
}

func TestRegisterAdvancesToContactPage(t *testing.T) {
	m := newLoginModel(nil)
	m.setMode(modeRegister)
	m.inputs[regName].SetValue("Sarah Connor")
	m.inputs[regEmail].SetValue("sarah@example.com")
	m.inputs[regPassword].SetValue("hunter2hunter2")
	m.inputs[regConfirm].SetValue("hunter2hunter2")

	if cmd := m.submit(nil); cmd != nil {
		t.Fatal("page one completion should not submit yet")
	}
	if m.regPage != 1 {
		t.Fatal("expected contact page")
	}
	if m.account.Name != "Sarah Connor" || m.account.Email != "sarah@example.com" {
		t.Fatalf("account not stashed: %+v", m.account)
	}

	// Contact details are required before the request goes out.
	client := api.NewClient("http://127.0.0.1:0")
	if cmd := m.submit(client); cmd != nil {
		t.Fatal("empty contact page should not submit")
	}
	want := "Phone number is required. Street address is required. City is required. State is required. Zip code is required"
	if m.errMsg != want {
		t.Fatalf("errMsg = %q, want %q", m.errMsg, want)
	}

	m.inputs[regPhone].SetValue("555-0100")
	m.inputs[regStreet].SetValue("1 Main St")
	m.inputs[regCity].SetValue("Springfield")
	m.inputs[regState].SetValue("IL")
	m.inputs[regZip].SetValue("62704")
	if cmd := m.submit(client); cmd == nil {
		t.Fatal("expected register command")
	}
	if !m.busy {
		t.Fatal("form should be busy while the request runs")
	}
}

// drainCmd executes a command and collects the produced messages,
// expanding batches recursively.
func drainCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, sub := range batch {
			msgs = append(msgs, drainCmd(sub)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func TestTickKeepsRunningOnLoginScreen(t *testing.T) {
	a := newTestApp(t)
	a.login.inputs[0].SetValue("sarah@example.com")

	_, cmd := a.Update(session.TickMsg{Interval: time.Millisecond})
	msgs := drainCmd(cmd)

	var ticked bool
	for _, m := range msgs {
		switch m.(type) {
		case session.TickMsg:
			ticked = true
		case session.ExpiredMsg:
			t.Fatal("tick without a session must not announce an expiry")
		}
	}
	if !ticked {
		t.Fatal("session check cycle not rescheduled on the login screen")
	}
	if a.login.inputs[0].Value() != "sarah@example.com" {
		t.Fatal("tick on the login screen wiped typed credentials")
	}
}

func TestTickAfterExpiryKeepsRunning(t *testing.T) {
	a := newSignedInApp(t)
	a.guard.ForceLogout("Session expired. Please login again.")

	_, cmd := a.Update(session.TickMsg{Interval: time.Millisecond})

	var ticked bool
	for _, m := range drainCmd(cmd) {
		if _, ok := m.(session.TickMsg); ok {
			ticked = true
		}
	}
	if !ticked {
		t.Fatal("session check cycle died after logout")
	}
}

func TestAuthRejectedDashboardForcesLogout(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(dashboardMsg{err: api.ErrAuthFailed})

	if a.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", a.screen)
	}
	if a.guard.Validate() {
		t.Fatal("guard still reports valid after the server rejected the token")
	}
	if a.client.HasToken() {
		t.Fatal("client kept the rejected token")
	}
	if a.login.infoMsg != "Session expired. Please login again." {
		t.Fatalf("infoMsg = %q", a.login.infoMsg)
	}
}

func TestAuthRejectedHistoryForcesLogout(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(transactionsMsg{err: api.ErrAuthFailed})

	if a.screen != screenLogin || a.guard.Validate() {
		t.Fatal("credential rejection on history fetch must tear the session down")
	}
}

func TestAuthRejectedTransferForcesLogout(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(transferDoneMsg{outcome: transfer.Outcome{
		AuthFailed: true,
		Message:    "Session expired. Please login again.",
	}})

	if a.screen != screenLogin || a.guard.Validate() {
		t.Fatal("credential rejection on transfer must tear the session down")
	}
}

func TestSessionVerificationFailureLogsOut(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(sessionVerifiedMsg{err: errors.New("connection refused")})

	if a.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", a.screen)
	}
	if a.guard.Validate() {
		t.Fatal("unverifiable resumed session must be discarded")
	}
	if a.login.infoMsg != "Session expired. Please login again." {
		t.Fatalf("infoMsg = %q", a.login.infoMsg)
	}
}

func TestSessionVerificationRefreshesUser(t *testing.T) {
	a := newSignedInApp(t)
	u := testUser()
	u.Balance = 3100

	a.Update(sessionVerifiedMsg{user: u})

	if a.screen != screenDashboard {
		t.Fatalf("verification success should stay on dashboard, got %d", a.screen)
	}
	if got := a.guard.User().Balance; got != 3100 {
		t.Fatalf("guard balance = %v, want 3100", got)
	}
}

func TestProfileFormCarriesAddress(t *testing.T) {
	u := testUser()
	u.Phone = "555-0100"
	u.Address = &model.Address{
		Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62704",
	}

	m := newSettingsModel(nil, config.DefaultConfig())
	m.openProfile(u)

	if len(m.inputs) != 6 {
		t.Fatalf("profile form has %d fields, want 6", len(m.inputs))
	}
	want := []string{"Sarah Connor", "555-0100", "1 Main St", "Springfield", "IL", "62704"}
	for i, w := range want {
		if got := m.inputs[i].Value(); got != w {
			t.Errorf("field %d = %q, want %q", i, got, w)
		}
	}

	m.inputs[3].SetValue("Shelbyville")
	m2, cmd := m.submit(api.NewClient("http://127.0.0.1:0"))
	if cmd == nil {
		t.Fatal("expected profile update command")
	}
	if !m2.busy {
		t.Fatal("form should be busy while the request runs")
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	a := newSignedInApp(t)

	a.Update(keyPress("?"))
	if !a.help.IsVisible() {
		t.Fatal("help should open on ?")
	}
	a.Update(keyPress("esc"))
	if a.help.IsVisible() {
		t.Fatal("esc should close help")
	}
}
