// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists teller's client-side state.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// PERSISTED SESSION STATE
// =============================================================================

// sessionState is the on-disk form of the client's session belief. The
// token is stored ENC:-prefixed; the user snapshot is a plain cache.
type sessionState struct {
	Token          string      `json:"token,omitempty"`
	User           *model.User `json:"user,omitempty"`
	LastActivityMs int64       `json:"last_activity_ms,omitempty"`
}

// StateStore reads and writes the persisted session state.
type StateStore struct {
	// BaseDir is the application directory, default ~/.teller
	BaseDir string

	secret []byte
}

// NewStateStore creates a state store rooted at baseDir.
func NewStateStore(baseDir string) (*StateStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, err
	}
	secret, err := loadDeviceSecret(baseDir)
	if err != nil {
		return nil, err
	}
	return &StateStore{BaseDir: baseDir, secret: secret}, nil
}

func (s *StateStore) statePath() string {
	return filepath.Join(s.BaseDir, "state.json")
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// load reads the state file. A missing or unreadable file yields an empty
// state; a token that fails decryption is discarded (fail closed).
func (s *StateStore) load() sessionState {
	var st sessionState

	data, err := os.ReadFile(s.statePath())
	if err != nil {
		return st
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return sessionState{}
	}

	if st.Token != "" {
		plain, err := decryptString(s.secret, st.Token)
		if err != nil {
			return sessionState{}
		}
		st.Token = plain
	}
	return st
}

// save writes the state file atomically, encrypting the token.
func (s *StateStore) save(st sessionState) error {
	if st.Token != "" {
		enc, err := encryptString(s.secret, st.Token)
		if err != nil {
			return err
		}
		st.Token = enc
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.statePath(), data, 0600)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Token returns the stored bearer credential, or "" if absent.
func (s *StateStore) Token() string {
	return s.load().Token
}

// SetToken stores the bearer credential.
func (s *StateStore) SetToken(token string) error {
	st := s.load()
	st.Token = token
	return s.save(st)
}

// User returns the cached user snapshot, or nil.
func (s *StateStore) User() *model.User {
	return s.load().User
}

// SetUser caches the user snapshot.
func (s *StateStore) SetUser(u *model.User) error {
	st := s.load()
	st.User = u
	return s.save(st)
}

// LastActivity returns the persisted activity timestamp, or the zero time.
func (s *StateStore) LastActivity() time.Time {
	st := s.load()
	if st.LastActivityMs == 0 {
		return time.Time{}
	}
	return time.UnixMilli(st.LastActivityMs)
}

// SetLastActivity persists the activity timestamp.
func (s *StateStore) SetLastActivity(t time.Time) error {
	st := s.load()
	st.LastActivityMs = t.UnixMilli()
	return s.save(st)
}

// SetSession stores credential, user, and activity timestamp in one write.
// Used on login/registration.
func (s *StateStore) SetSession(token string, u *model.User, activity time.Time) error {
	return s.save(sessionState{
		Token:          token,
		User:           u,
		LastActivityMs: activity.UnixMilli(),
	})
}

// Clear removes all session state: credential, cached user, and activity
// timestamp. Called on logout, expiry, and auth failure.
func (s *StateStore) Clear() error {
	err := os.Remove(s.statePath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
