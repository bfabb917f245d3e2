// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// session_cmd.go - Session command implementation for teller.
//
// Command: session
// Subcommands:
//   show (default)  Print the persisted session, if any
//   clear           Remove the persisted session from disk
package cli

import (
	"fmt"
	"time"

	"github.com/jeranaias/teller-tui/internal/config"
	"github.com/jeranaias/teller-tui/internal/util"
)

// RunSession implements `teller session`.
func RunSession(cfg *config.Config, args Args) error {
	store, err := openStateStore()
	if err != nil {
		return err
	}

	switch args.Subcommand {
	case "", "show":
		u := store.User()
		if u == nil || store.Token() == "" {
			fmt.Println("No persisted session.")
			return nil
		}
		activity := store.LastActivity()
		remaining := cfg.SessionTimeout() - time.Since(activity)
		fmt.Printf("User:         %s\n", u.Name)
		fmt.Printf("Account:      %s\n", util.MaskAccount(u.AccountNumber))
		fmt.Printf("Last active:  %s\n", activity.Format(time.RFC3339))
		if remaining > 0 {
			fmt.Printf("Remaining:    %s\n", remaining.Round(time.Second))
		} else {
			fmt.Println("Remaining:    expired")
		}
		return nil
	case "clear":
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Persisted session cleared.")
		return nil
	default:
		return fmt.Errorf("unknown session subcommand %q (want show or clear)", args.Subcommand)
	}
}
