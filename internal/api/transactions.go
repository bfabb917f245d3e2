// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the client for the remote banking REST API.
package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jeranaias/teller-tui/internal/model"
)

// =============================================================================
// TRANSFERS
// =============================================================================

// TransferResult is the outcome of one transfer submission. Failures are
// folded in as values: Success=false plus a message, never a raised error.
// AuthFailed marks a rejection of the credential itself, which the caller
// must treat as a forced logout, not a failed transfer.
type TransferResult struct {
	Success     bool
	Message     string
	Transaction *model.Transaction
	NewBalance  float64
	AuthFailed  bool
}

// Transfer submits a money transfer (POST /transactions/transfer).
func (c *Client) Transfer(ctx context.Context, toAccount string, amount float64, description string) TransferResult {
	env, err := c.do(ctx, http.MethodPost, "/transactions/transfer", nil, map[string]any{
		"toAccount":   toAccount,
		"amount":      amount,
		"description": description,
	})
	if err != nil {
		return TransferResult{
			Message:    remoteFailureMessage(err, "Transfer failed. Please try again."),
			AuthFailed: errors.Is(err, ErrAuthFailed),
		}
	}

	result := TransferResult{
		Success:    env.Success,
		Message:    env.Message,
		NewBalance: env.NewBalance,
	}
	if len(env.Data) > 0 {
		var txn model.Transaction
		if decodeData(env, &txn) == nil {
			result.Transaction = &txn
		}
	}
	if !result.Success && result.Message == "" {
		result.Message = "Transfer failed. Please try again."
	}
	return result
}

// ScheduleTransfer books a future-dated transfer (POST /transactions/schedule).
func (c *Client) ScheduleTransfer(ctx context.Context, toAccount string, amount float64, when time.Time, description string) TransferResult {
	env, err := c.do(ctx, http.MethodPost, "/transactions/schedule", nil, map[string]any{
		"toAccount":    toAccount,
		"amount":       amount,
		"scheduleDate": when.Format(time.RFC3339),
		"description":  description,
	})
	if err != nil {
		return TransferResult{
			Message:    remoteFailureMessage(err, "Failed to schedule transfer"),
			AuthFailed: errors.Is(err, ErrAuthFailed),
		}
	}

	result := TransferResult{Success: true, Message: env.Message}
	if len(env.Data) > 0 {
		var txn model.Transaction
		if decodeData(env, &txn) == nil {
			result.Transaction = &txn
		}
	}
	return result
}

// CancelTransaction cancels a pending or scheduled transaction.
func (c *Client) CancelTransaction(ctx context.Context, id string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/transactions/"+url.PathEscape(id)+"/cancel", nil, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// =============================================================================
// QUERIES
// =============================================================================

// TransactionQuery narrows a transaction listing. Zero values mean "all".
type TransactionQuery struct {
	Page   int
	Limit  int
	Status string
	Type   string
	Search string
}

// Transactions lists the account's transactions (GET /transactions).
func (c *Client) Transactions(ctx context.Context, q TransactionQuery) ([]model.Transaction, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	env, err := c.do(ctx, http.MethodGet, "/transactions", params, nil)
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	if err := decodeData(env, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// Transaction fetches one transaction by ID (GET /transactions/:id).
func (c *Client) Transaction(ctx context.Context, id string) (*model.Transaction, error) {
	if id == "" {
		return nil, errors.New("transaction id required")
	}

	env, err := c.do(ctx, http.MethodGet, "/transactions/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var txn model.Transaction
	if err := decodeData(env, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// remoteFailureMessage converts a remote-call error into a user-facing
// message, preferring the server's own words over the generic fallback.
func remoteFailureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrAuthFailed) {
		return "Session expired. Please login again."
	}
	return fallback
}
