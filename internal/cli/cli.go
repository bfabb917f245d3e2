// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for teller.
package cli

import (
	"fmt"
	"runtime"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdConfig
	CmdSession
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Command Command

	// Global flags
	JSON    bool   // Output in JSON format
	Theme   string // Override the configured theme for this run
	BaseURL string // Override the configured API base URL

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `teller - terminal banking client

Teller is a keyboard-driven front end for the SecureBank API.

Usage:
  teller                     Start the TUI (default)
  teller status, s           Show connection and session status
  teller config [show|set|path]  Configuration
  teller session [show|clear]    Persisted session management
  teller version, -v         Show version
  teller help, -h            Show this help

Global flags:
  --json             Machine-readable output for status and config
  --theme <name>     Use "dark" or "light" for this run
  --api <url>        Override the API base URL for this run

Examples:
  teller status --json
  teller config set session.timeout_secs 600
  teller session clear
`

// Parse turns os.Args[1:] into an Args value. Unknown commands fall
// through to help so a typo never silently starts the TUI.
func Parse(raw []string) Args {
	parser := newArgParser(raw)

	args := Args{
		Command: CmdTUI,
		JSON:    parser.boolFlag("json"),
		Theme:   parser.flag("theme"),
		BaseURL: parser.flag("api"),
		Raw:     parser.positionals(),
	}

	if len(args.Raw) == 0 {
		return args
	}

	cmd := args.Raw[0]
	rest := args.Raw[1:]

	switch cmd {
	case "status", "s":
		args.Command = CmdStatus
	case "config":
		args.Command = CmdConfig
		if len(rest) > 0 {
			args.Subcommand = rest[0]
		}
		if len(rest) > 1 {
			args.ConfigKey = rest[1]
		}
		if len(rest) > 2 {
			args.ConfigVal = rest[2]
		}
	case "session", "sessions":
		args.Command = CmdSession
		if len(rest) > 0 {
			args.Subcommand = rest[0]
		}
	case "version", "-v", "--version":
		args.Command = CmdVersion
	case "help", "-h", "--help":
		args.Command = CmdHelp
	default:
		args.Command = CmdHelp
	}

	return args
}

// PrintUsage writes the help text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes build information to stdout.
func PrintVersion() {
	fmt.Printf("teller %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
