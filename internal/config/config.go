// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for teller.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file location (in order of precedence):
//   - ~/.teller/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete teller configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// API configuration
	API APIConfig `toml:"api" json:"api"`

	// Session configuration
	Session SessionConfig `toml:"session" json:"session"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// APIConfig contains the remote banking API settings.
type APIConfig struct {
	// BaseURL is the base URL of the banking REST API
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the HTTP request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// SessionConfig contains session timeout settings.
type SessionConfig struct {
	// TimeoutSecs is the inactivity timeout in seconds.
	// Valid range is 300-1800 seconds (5-30 minutes); values outside the
	// range are clamped.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// WarningSecs is how long before timeout to warn (30-300 seconds).
	WarningSecs int `toml:"warning_secs" json:"warning_secs"`
	// CheckIntervalSecs is how often the background check runs (5-120 seconds).
	CheckIntervalSecs int `toml:"check_interval_secs" json:"check_interval_secs"`
}

// UIConfig contains UI preferences.
type UIConfig struct {
	// Theme selects the color scheme: "dark" or "light"
	Theme string `toml:"theme" json:"theme"`
	// ShowBalanceOnDashboard hides the headline balance when false
	ShowBalanceOnDashboard bool `toml:"show_balance" json:"show_balance"`
}

// =============================================================================
// CLAMP BOUNDS
// =============================================================================

// Theme names accepted by UIConfig.Theme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

const (
	minSessionTimeout = 5 * time.Minute
	maxSessionTimeout = 30 * time.Minute
	minWarning        = 30 * time.Second
	maxWarning        = 5 * time.Minute
	minCheckInterval  = 5 * time.Second
	maxCheckInterval  = 2 * time.Minute
	minAPITimeout     = 5 * time.Second
	maxAPITimeout     = 2 * time.Minute
)

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:     "https://api.teller.local/v1",
			TimeoutSecs: 30,
		},
		Session: SessionConfig{
			TimeoutSecs:       int((15 * time.Minute).Seconds()),
			WarningSecs:       int((2 * time.Minute).Seconds()),
			CheckIntervalSecs: 30,
		},
		UI: UIConfig{
			Theme:                  "dark",
			ShowBalanceOnDashboard: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the teller application directory (~/.teller), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".teller")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

var (
	loadMu sync.Mutex
)

// Load reads the configuration from disk, applies environment overrides,
// validates, and returns the result. A missing file is not an error; the
// defaults are used.
func Load() (*Config, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	cfg := DefaultConfig()

	path, err := Path()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.Validate()

	return cfg, nil
}

// LoadFrom reads configuration from an explicit file path. Used by tests
// and the config watcher.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	applyEnvOverrides(cfg)
	cfg.Validate()
	return cfg, nil
}

// applyEnvOverrides applies TELLER_* environment variables on top of the
// file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TELLER_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("TELLER_SESSION_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Session.TimeoutSecs = n
		}
	}
	if v := os.Getenv("TELLER_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate clamps out-of-range values to their valid bounds and normalizes
// enumerated fields. It never fails: a bad config degrades to a safe one.
func (c *Config) Validate() {
	c.Session.TimeoutSecs = clampSecs(c.Session.TimeoutSecs, minSessionTimeout, maxSessionTimeout)
	c.Session.WarningSecs = clampSecs(c.Session.WarningSecs, minWarning, maxWarning)
	c.Session.CheckIntervalSecs = clampSecs(c.Session.CheckIntervalSecs, minCheckInterval, maxCheckInterval)
	c.API.TimeoutSecs = clampSecs(c.API.TimeoutSecs, minAPITimeout, maxAPITimeout)

	// Warning must leave a live window before timeout
	if c.Session.WarningSecs >= c.Session.TimeoutSecs {
		c.Session.WarningSecs = int(minWarning.Seconds())
	}

	c.API.BaseURL = strings.TrimSuffix(c.API.BaseURL, "/")

	switch c.UI.Theme {
	case ThemeDark, ThemeLight:
	default:
		c.UI.Theme = ThemeDark
	}
}

func clampSecs(v int, min, max time.Duration) int {
	if v < int(min.Seconds()) {
		return int(min.Seconds())
	}
	if v > int(max.Seconds()) {
		return int(max.Seconds())
	}
	return v
}

// =============================================================================
// DURATION ACCESSORS
// =============================================================================

// SessionTimeout returns the session timeout as a duration.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Session.TimeoutSecs) * time.Second
}

// WarningThreshold returns the expiry warning window as a duration.
func (c *Config) WarningThreshold() time.Duration {
	return time.Duration(c.Session.WarningSecs) * time.Second
}

// CheckInterval returns the background check interval as a duration.
func (c *Config) CheckInterval() time.Duration {
	return time.Duration(c.Session.CheckIntervalSecs) * time.Second
}

// APITimeout returns the HTTP request timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to disk atomically.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return util.AtomicWriteFile(path, []byte(sb.String()), 0600)
}
