// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for teller.
//
// Command: status
// Short:   Display connection and session status
// Aliases: s
//
// Sections:
//   API:      Configured base URL and whether the server answers
//   Session:  Persisted login, last activity, time remaining
//   Config:   Timeout settings and where the config file lives
//
// Flags:
//   --json    Structured output for scripting
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/config"
	"github.com/jeranaias/teller-tui/internal/session"
	"github.com/jeranaias/teller-tui/internal/storage"
	"github.com/jeranaias/teller-tui/internal/util"
)

// statusReport is the JSON shape of `teller status --json`.
type statusReport struct {
	API struct {
		BaseURL   string `json:"base_url"`
		Reachable bool   `json:"reachable"`
		Error     string `json:"error,omitempty"`
	} `json:"api"`
	Session struct {
		LoggedIn      bool   `json:"logged_in"`
		User          string `json:"user,omitempty"`
		Account       string `json:"account,omitempty"`
		LastActivity  string `json:"last_activity,omitempty"`
		RemainingSecs int    `json:"remaining_secs"`
	} `json:"session"`
	Config struct {
		Path        string `json:"path"`
		TimeoutSecs int    `json:"timeout_secs"`
		WarningSecs int    `json:"warning_secs"`
		Theme       string `json:"theme"`
	} `json:"config"`
}

var (
	statusLabelStyle = lipgloss.NewStyle().Bold(true).Width(14)
	statusOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusBadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusDimStyle   = lipgloss.NewStyle().Faint(true)
)

// RunStatus implements `teller status`.
func RunStatus(cfg *config.Config, args Args) error {
	report := buildStatus(cfg, args)

	if args.JSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printStatus(report)
	return nil
}

func buildStatus(cfg *config.Config, args Args) statusReport {
	var report statusReport

	baseURL := cfg.API.BaseURL
	if args.BaseURL != "" {
		baseURL = args.BaseURL
	}
	report.API.BaseURL = baseURL

	client := api.NewClient(baseURL).WithTimeout(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		report.API.Error = err.Error()
	} else {
		report.API.Reachable = true
	}

	if store, err := openStateStore(); err == nil {
		if u := store.User(); u != nil && store.Token() != "" {
			report.Session.LoggedIn = true
			report.Session.User = u.Name
			report.Session.Account = util.MaskAccount(u.AccountNumber)
			activity := store.LastActivity()
			report.Session.LastActivity = activity.Format(time.RFC3339)
			remaining := cfg.SessionTimeout() - time.Since(activity)
			if remaining < 0 {
				remaining = 0
			}
			report.Session.RemainingSecs = int(remaining.Seconds())
		}
	}

	if path, err := config.Path(); err == nil {
		report.Config.Path = path
	}
	report.Config.TimeoutSecs = cfg.Session.TimeoutSecs
	report.Config.WarningSecs = cfg.Session.WarningSecs
	report.Config.Theme = cfg.UI.Theme

	return report
}

// openStateStore opens the persisted session in the standard app dir.
func openStateStore() (*storage.StateStore, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return storage.NewStateStore(dir)
}

func printStatus(r statusReport) {
	row := func(label, value string) {
		fmt.Println(statusLabelStyle.Render(label) + value)
	}

	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Render("teller status"))
	fmt.Println()

	row("API", r.API.BaseURL)
	if r.API.Reachable {
		row("Reachable", statusOKStyle.Render("yes"))
	} else {
		row("Reachable", statusBadStyle.Render("no"))
		if r.API.Error != "" {
			row("", statusDimStyle.Render(r.API.Error))
		}
	}
	fmt.Println()

	if r.Session.LoggedIn {
		row("Logged in", r.Session.User)
		row("Account", r.Session.Account)
		row("Last active", r.Session.LastActivity)
		remaining := time.Duration(r.Session.RemainingSecs) * time.Second
		if remaining > 0 {
			row("Remaining", session.FormatRemaining(remaining))
		} else {
			row("Remaining", statusBadStyle.Render("expired"))
		}
	} else {
		row("Logged in", statusDimStyle.Render("no"))
	}
	fmt.Println()

	row("Config", r.Config.Path)
	row("Timeout", fmt.Sprintf("%ds (warn at %ds)", r.Config.TimeoutSecs, r.Config.WarningSecs))
	row("Theme", r.Config.Theme)
	fmt.Println()
}
