// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

// Async command layer. Every network call runs as a tea.Cmd off the
// event loop and lands back as one of these messages; Update stays
// non-blocking throughout.

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/config"
	"github.com/jeranaias/teller-tui/internal/model"
	"github.com/jeranaias/teller-tui/internal/receipt"
	"github.com/jeranaias/teller-tui/internal/storage"
	"github.com/jeranaias/teller-tui/internal/transfer"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly loaded config after the file on
// disk changed. Sent from outside the program by the config watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// sessionVerifiedMsg carries the result of re-checking a resumed
// session's token against the server.
type sessionVerifiedMsg struct {
	user *model.User
	err  error
}

// authResultMsg carries the outcome of a login or register call.
type authResultMsg struct {
	result api.AuthResult
}

// dashboardMsg carries a refreshed dashboard, or the failure to get one.
type dashboardMsg struct {
	dashboard *model.Dashboard
	err       error
}

// transferDoneMsg carries a transfer submission outcome tagged with
// its wizard attempt, so stale replies are dropped on arrival.
type transferDoneMsg struct {
	attempt int
	outcome transfer.Outcome
}

// txDetailMsg carries fetched transaction details for the result step
// or the detail screen.
type txDetailMsg struct {
	tx  *model.Transaction
	err error
}

// transactionsMsg carries a page of transaction history.
type transactionsMsg struct {
	txns      []model.Transaction
	fromCache bool
	err       error
}

// cancelTxMsg carries the outcome of cancelling a scheduled transaction.
type cancelTxMsg struct {
	id      string
	message string
	err     error
}

// profileSavedMsg carries the outcome of a profile update.
type profileSavedMsg struct {
	user    *model.User
	message string
	err     error
}

// passwordChangedMsg carries the outcome of a password change.
type passwordChangedMsg struct {
	message string
	err     error
}

// statementMsg carries the written statement path.
type statementMsg struct {
	path string
	err  error
}

// receiptMsg carries the written receipt path.
type receiptMsg struct {
	path string
	err  error
}

// templateSavedMsg reports a saved transfer template.
type templateSavedMsg struct {
	name string
	err  error
}

// =============================================================================
// COMMANDS
// =============================================================================

// verifySessionCmd asks the server who the persisted token belongs to.
// A resumed session is only trusted once this comes back clean.
func verifySessionCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		u, err := client.CurrentUser(ctx)
		return sessionVerifiedMsg{user: u, err: err}
	}
}

func loginCmd(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		return authResultMsg{result: client.Login(ctx, email, password)}
	}
}

func registerCmd(client *api.Client, req api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		return authResultMsg{result: client.Register(ctx, req)}
	}
}

func dashboardCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		d, err := client.Dashboard(ctx)
		return dashboardMsg{dashboard: d, err: err}
	}
}

func transferCmd(client *api.Client, attempt int, req transfer.Request, amount float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		res := client.Transfer(ctx, req.ToAccount, amount, req.Description)
		return transferDoneMsg{
			attempt: attempt,
			outcome: transfer.Outcome{
				Success:     res.Success,
				Message:     res.Message,
				Transaction: res.Transaction,
				NewBalance:  res.NewBalance,
				HasBalance:  res.Success,
				AuthFailed:  res.AuthFailed,
			},
		}
	}
}

// scheduleTransferCmd books a future-dated transfer. The balance is not
// debited until the scheduled date, so no balance update is reported.
func scheduleTransferCmd(client *api.Client, attempt int, req transfer.Request, amount float64, when time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		res := client.ScheduleTransfer(ctx, req.ToAccount, amount, when, req.Description)
		return transferDoneMsg{
			attempt: attempt,
			outcome: transfer.Outcome{
				Success:     res.Success,
				Message:     res.Message,
				Transaction: res.Transaction,
				AuthFailed:  res.AuthFailed,
			},
		}
	}
}

func txDetailCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		tx, err := client.Transaction(ctx, id)
		return txDetailMsg{tx: tx, err: err}
	}
}

// transactionsCmd fetches history and refreshes the local cache. On a
// network failure it falls back to cached rows so history still shows
// something offline. A credential rejection is never papered over with
// cached rows; it surfaces so the session gets torn down.
func transactionsCmd(client *api.Client, cache *storage.TxCache, q api.TransactionQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()

		txns, err := client.Transactions(ctx, q)
		if err == nil {
			if cache != nil {
				_ = cache.Put(ctx, txns)
			}
			return transactionsMsg{txns: txns}
		}
		if errors.Is(err, api.ErrAuthFailed) {
			return transactionsMsg{err: err}
		}

		if cache != nil {
			if cached, cerr := cache.Recent(ctx, q.Limit); cerr == nil && len(cached) > 0 {
				return transactionsMsg{txns: cached, fromCache: true}
			}
		}
		return transactionsMsg{err: err}
	}
}

func cancelTxCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		msg, err := client.CancelTransaction(ctx, id)
		return cancelTxMsg{id: id, message: msg, err: err}
	}
}

func updateProfileCmd(client *api.Client, update api.ProfileUpdate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		user, msg, err := client.UpdateProfile(ctx, update)
		return profileSavedMsg{user: user, message: msg, err: err}
	}
}

func changePasswordCmd(client *api.Client, current, next string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		msg, err := client.ChangePassword(ctx, current, next)
		return passwordChangedMsg{message: msg, err: err}
	}
}

func statementCmd(client *api.Client, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		entries, err := client.Statement(ctx, start, end)
		if err != nil {
			return statementMsg{err: err}
		}
		path, err := receipt.WriteStatementCSV(entries, start, end, nil)
		return statementMsg{path: path, err: err}
	}
}

func receiptCmd(r *receipt.Receipt, markdown bool) tea.Cmd {
	return func() tea.Msg {
		var exp receipt.Exporter
		if markdown {
			exp = receipt.NewMarkdownExporter()
		} else {
			exp = receipt.NewTextExporter()
		}
		path, err := receipt.WriteReceipt(r, exp, nil)
		return receiptMsg{path: path, err: err}
	}
}

func saveTemplateCmd(store *storage.TemplateStore, req transfer.Request) tea.Cmd {
	return func() tea.Msg {
		name := transfer.TemplateName(req.ToAccount)
		err := store.Save(storage.Template{
			Name:        name,
			ToAccount:   req.ToAccount,
			Amount:      req.Amount,
			Description: req.Description,
			Timestamp:   time.Now(),
		})
		return templateSavedMsg{name: name, err: err}
	}
}
