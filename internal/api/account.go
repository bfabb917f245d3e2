// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the client for the remote banking REST API.
package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jeranaias/teller-tui/internal/model"
)

// =============================================================================
// ACCOUNT OPERATIONS
// =============================================================================

// Dashboard fetches the account dashboard (GET /account/dashboard).
func (c *Client) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	env, err := c.do(ctx, http.MethodGet, "/account/dashboard", nil, nil)
	if err != nil {
		return nil, err
	}

	var dash model.Dashboard
	if err := decodeData(env, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// ProfileUpdate is the payload for PUT /account/update. Nil/empty fields
// are left unchanged by the server.
type ProfileUpdate struct {
	Name    string         `json:"name,omitempty"`
	Phone   string         `json:"phone,omitempty"`
	Address *model.Address `json:"address,omitempty"`
}

// UpdateProfile updates the profile and returns the fresh user record.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, string, error) {
	env, err := c.do(ctx, http.MethodPut, "/account/update", nil, update)
	if err != nil {
		return nil, "", err
	}
	if env.User != nil {
		return env.User, env.Message, nil
	}
	var user model.User
	if err := decodeData(env, &user); err != nil {
		return nil, "", err
	}
	return &user, env.Message, nil
}

// StatementEntry is one line of an account statement.
type StatementEntry struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Balance     float64   `json:"balance"`
}

// Statement fetches the account statement for a date range.
func (c *Client) Statement(ctx context.Context, start, end time.Time) ([]StatementEntry, error) {
	params := url.Values{}
	params.Set("startDate", start.Format("2006-01-02"))
	params.Set("endDate", end.Format("2006-01-02"))
	params.Set("format", "json")

	env, err := c.do(ctx, http.MethodGet, "/account/statement", params, nil)
	if err != nil {
		return nil, err
	}

	var entries []StatementEntry
	if err := decodeData(env, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
