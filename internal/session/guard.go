// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks authentication validity and user-activity recency.
//
// A session is valid iff a credential is present and the elapsed time since
// the last recognized activity is below the inactivity timeout. The guard
// gates every protected view, asserts a time-bounded expiry warning before
// forced logout, and clears all session state (credential, cached user,
// activity timestamp) the moment validity is lost. Fail closed, always.
package session

import (
	"sync"
	"time"

	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/storage"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// STATES
// =============================================================================

// State is the guard's authentication verdict.
type State int

const (
	// StateChecking means validity has not been established yet.
	StateChecking State = iota

	// StateValid means a protected view may render.
	StateValid

	// StateInvalid means the session is absent or expired; protected
	// views must redirect to login before painting.
	StateInvalid
)

// String returns the state name for logs and status lines.
func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "checking"
	}
}

// =============================================================================
// GUARD
// =============================================================================

// Guard tracks session state including the banking inactivity timeout.
type Guard struct {
	mu sync.Mutex

	store *storage.StateStore

	// Session tracking
	token        string
	user         *model.User
	lastActivity time.Time

	// Timeout configuration
	timeout       time.Duration // Default: 15 minutes
	warningBefore time.Duration // Default: 2 minutes before timeout
	warningDue    bool
	warningShown  bool

	state State

	// logoutReason carries the message shown on the login view after a
	// forced logout, e.g. "Session expired. Please login again."
	logoutReason string
}

// Config holds configuration for the session guard.
type Config struct {
	// Timeout is the inactivity timeout (default: 15 minutes)
	Timeout time.Duration

	// WarningBefore is how long before timeout to warn (default: 2 minutes)
	WarningBefore time.Duration
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:       15 * time.Minute,
		WarningBefore: 2 * time.Minute,
	}
}

// NewGuard creates a session guard backed by the given state store. Any
// previously persisted session is picked up so a restart within the
// timeout window stays logged in.
func NewGuard(cfg Config, store *storage.StateStore) *Guard {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Minute
	}
	if cfg.WarningBefore <= 0 || cfg.WarningBefore >= cfg.Timeout {
		cfg.WarningBefore = 2 * time.Minute
	}

	g := &Guard{
		store:         store,
		timeout:       cfg.Timeout,
		warningBefore: cfg.WarningBefore,
		state:         StateChecking,
	}

	if store != nil {
		g.token = store.Token()
		g.user = store.User()
		g.lastActivity = store.LastActivity()
	}

	return g
}

// SetConfig applies new timing values, clamped the same way NewGuard
// clamps them. Used when the config file changes while running.
func (g *Guard) SetConfig(cfg Config) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Minute
	}
	if cfg.WarningBefore <= 0 || cfg.WarningBefore >= cfg.Timeout {
		cfg.WarningBefore = 2 * time.Minute
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.timeout = cfg.Timeout
	g.warningBefore = cfg.WarningBefore
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Begin installs a fresh session after login or registration.
func (g *Guard) Begin(token string, user *model.User) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	g.token = token
	g.user = user
	g.lastActivity = now
	g.warningDue = false
	g.warningShown = false
	g.state = StateValid
	g.logoutReason = ""

	if g.store != nil {
		g.store.SetSession(token, user, now)
	}
}

// ForceLogout clears all session state and records the reason for display
// on the login view.
func (g *Guard) ForceLogout(reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearLocked(reason)
}

// clearLocked destroys credential, cached user, and activity timestamp in
// memory and on disk. Callers hold g.mu.
func (g *Guard) clearLocked(reason string) {
	g.token = ""
	g.user = nil
	g.lastActivity = time.Time{}
	g.warningDue = false
	g.warningShown = false
	g.state = StateInvalid
	g.logoutReason = reason

	if g.store != nil {
		g.store.Clear()
	}
}

// LogoutReason returns and consumes the pending logout reason.
func (g *Guard) LogoutReason() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	reason := g.logoutReason
	g.logoutReason = ""
	return reason
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate reports whether the session is valid: a credential is present
// and elapsed time since last activity is below the timeout. Expiry clears
// all session state before returning false. Crossing into the warning
// window marks the warning as due.
func (g *Guard) Validate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token == "" {
		g.state = StateInvalid
		return false
	}

	// A stored token with no recorded activity counts from now; the
	// caller records activity on mount anyway.
	if g.lastActivity.IsZero() {
		g.lastActivity = time.Now()
	}

	elapsed := time.Since(g.lastActivity)

	if elapsed >= g.timeout {
		g.clearLocked("Session expired. Please login again.")
		return false
	}

	if elapsed >= g.timeout-g.warningBefore {
		g.warningDue = true
	}

	g.state = StateValid
	return true
}

// RecordActivity sets the activity timestamp to now and clears any pending
// warning. Called on every recognized user interaction and unconditionally
// when a protected view mounts.
func (g *Guard) RecordActivity() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token == "" {
		return
	}

	now := time.Now()
	g.lastActivity = now
	g.warningDue = false
	g.warningShown = false

	if g.store != nil {
		g.store.SetLastActivity(now)
	}
}

// Extend is the warning UI's "continue session" action.
func (g *Guard) Extend() {
	g.RecordActivity()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the guard's current verdict.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Token returns the current credential, or "" when logged out.
func (g *Guard) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// User returns the cached user snapshot, or nil.
func (g *Guard) User() *model.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user
}

// SetUser refreshes the cached user snapshot after a profile reload.
func (g *Guard) SetUser(u *model.User) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = u
	if g.store != nil {
		g.store.SetUser(u)
	}
}

// Remaining returns the time until timeout, floored at zero.
func (g *Guard) Remaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token == "" || g.lastActivity.IsZero() {
		return 0
	}
	remaining := g.timeout - time.Since(g.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ShouldShowWarning reports whether the expiry warning should be asserted.
// True at most once per threshold crossing: once shown, activity must
// reset the clock before it can fire again.
func (g *Guard) ShouldShowWarning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.warningDue && !g.warningShown
}

// MarkWarningShown records that the warning overlay is up.
func (g *Guard) MarkWarningShown() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.warningShown = true
}

// =============================================================================
// AUTHORIZATION
// =============================================================================

// HasRequiredRoles reports whether the current user may access a view that
// declares required roles. No declared roles means open access; declared
// roles require a non-empty intersection with the user's role set. A user
// without role data is denied, not waved through.
func (g *Guard) HasRequiredRoles(required []string) bool {
	if len(required) == 0 {
		return true
	}

	g.mu.Lock()
	user := g.user
	g.mu.Unlock()

	if user == nil {
		return false
	}
	for _, role := range required {
		if user.HasRole(role) {
			return true
		}
	}
	return false
}

// =============================================================================
// STATUS
// =============================================================================

// Status is a point-in-time snapshot for status lines and debugging.
type Status struct {
	State      State
	HasToken   bool
	Remaining  time.Duration
	WarningDue bool
}

// GetStatus returns the current session status.
func (g *Guard) GetStatus() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	remaining := time.Duration(0)
	if g.token != "" && !g.lastActivity.IsZero() {
		remaining = g.timeout - time.Since(g.lastActivity)
		if remaining < 0 {
			remaining = 0
		}
	}

	return Status{
		State:      g.state,
		HasToken:   g.token != "",
		Remaining:  remaining,
		WarningDue: g.warningDue,
	}
}

// FormatRemaining renders a countdown as m:ss for the warning overlay.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	pad := ""
	if secs < 10 {
		pad = "0"
	}
	return util.IntToString(mins) + ":" + pad + util.IntToString(secs)
}
