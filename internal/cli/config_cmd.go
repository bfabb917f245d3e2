// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for teller.
//
// Command: config
// Subcommands:
//   show (default)  Print the effective configuration
//   set <key> <val> Change a setting and save the file
//   path            Print the config file location
//
// Settable keys:
//   api.base_url, api.timeout_secs,
//   session.timeout_secs, session.warning_secs, session.check_interval_secs,
//   ui.theme, ui.show_balance
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/teller-tui/internal/config"
)

// RunConfig implements `teller config`.
func RunConfig(cfg *config.Config, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(cfg, args.JSON)
	case "set":
		return configSet(cfg, args.ConfigKey, args.ConfigVal)
	case "path":
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, set, or path)", args.Subcommand)
	}
}

func configShow(cfg *config.Config, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	enc := toml.NewEncoder(printerWriter{})
	return enc.Encode(cfg)
}

// printerWriter lets the TOML encoder stream straight to stdout.
type printerWriter struct{}

func (printerWriter) Write(p []byte) (int, error) {
	fmt.Print(string(p))
	return len(p), nil
}

func configSet(cfg *config.Config, key, value string) error {
	if key == "" || value == "" {
		return fmt.Errorf("usage: teller config set <key> <value>")
	}

	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.timeout_secs":
		n, err := parseSecs(key, value)
		if err != nil {
			return err
		}
		cfg.API.TimeoutSecs = n
	case "session.timeout_secs":
		n, err := parseSecs(key, value)
		if err != nil {
			return err
		}
		cfg.Session.TimeoutSecs = n
	case "session.warning_secs":
		n, err := parseSecs(key, value)
		if err != nil {
			return err
		}
		cfg.Session.WarningSecs = n
	case "session.check_interval_secs":
		n, err := parseSecs(key, value)
		if err != nil {
			return err
		}
		cfg.Session.CheckIntervalSecs = n
	case "ui.theme":
		if value != config.ThemeDark && value != config.ThemeLight {
			return fmt.Errorf("ui.theme must be %q or %q", config.ThemeDark, config.ThemeLight)
		}
		cfg.UI.Theme = value
	case "ui.show_balance":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.show_balance must be true or false")
		}
		cfg.UI.ShowBalanceOnDashboard = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	// Out-of-range values are clamped, matching startup behavior.
	cfg.Validate()
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func parseSecs(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of seconds", key)
	}
	return n, nil
}
