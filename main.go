// teller TUI - A terminal client for the SecureBank API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/cli"
	"github.com/jeranaias/teller-tui/internal/config"
	"github.com/jeranaias/teller-tui/internal/session"
	"github.com/jeranaias/teller-tui/internal/storage"
	"github.com/jeranaias/teller-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args := cli.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "teller: failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(cfg, args)

	switch args.Command {
	case cli.CmdTUI:
		if err := runTUI(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "teller: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdStatus:
		exitOn(cli.RunStatus(cfg, args))
	case cli.CmdConfig:
		exitOn(cli.RunConfig(cfg, args))
	case cli.CmdSession:
		exitOn(cli.RunSession(cfg, args))
	case cli.CmdVersion:
		cli.PrintVersion()
	default:
		cli.PrintUsage()
	}
}

// applyOverrides folds per-run CLI flags into the loaded config.
func applyOverrides(cfg *config.Config, args cli.Args) {
	if args.BaseURL != "" {
		cfg.API.BaseURL = args.BaseURL
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}
	cfg.Validate()
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "teller: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires storage, API client, and session guard together and
// hands control to the Bubble Tea program.
func runTUI(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("not a terminal; use `teller status` for scripted access")
	}

	dir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("app directory: %w", err)
	}

	// Route the standard logger to a file; stdout belongs to the TUI.
	logFile, err := os.OpenFile(filepath.Join(dir, "teller.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err == nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	state, err := storage.NewStateStore(dir)
	if err != nil {
		return fmt.Errorf("session state: %w", err)
	}
	templates, err := storage.NewTemplateStore(dir)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	txCache, err := storage.OpenTxCache(dir)
	if err != nil {
		return fmt.Errorf("transaction cache: %w", err)
	}
	defer txCache.Close()

	client := api.NewClient(cfg.API.BaseURL).WithTimeout(cfg.APITimeout())
	guard := session.NewGuard(session.Config{
		Timeout:       cfg.SessionTimeout(),
		WarningBefore: cfg.WarningThreshold(),
	}, state)

	root := app.New(app.Deps{
		Config:    cfg,
		Client:    client,
		Guard:     guard,
		Templates: templates,
		TxCache:   txCache,
	})

	program := tea.NewProgram(root, tea.WithAltScreen())

	// Config edits while running are picked up without a restart.
	watcher, err := config.NewWatcher(func(next *config.Config) {
		program.Send(app.ConfigReloadedMsg{Config: next})
	})
	if err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
