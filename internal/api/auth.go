// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the client for the remote banking REST API.
package api

import (
	"context"
	"net/http"

	"github.com/jeranaias/teller-tui/internal/model"
)

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// AuthResult is the outcome of a login or registration attempt. Failures
// carry a user-facing message; the credential is installed on the client
// only on success.
type AuthResult struct {
	Success bool
	Message string
	Token   string
	User    *model.User
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Phone    string         `json:"phone,omitempty"`
	Address  *model.Address `json:"address,omitempty"`
}

// Login authenticates with email and password. The result is a value:
// a rejected login is Success=false with the server's message, not an
// error for the UI to catch.
func (c *Client) Login(ctx context.Context, email, password string) AuthResult {
	if !c.authLimiter.Allow() {
		return AuthResult{Message: ErrRateLimited.Error()}
	}

	env, err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return AuthResult{Message: authFailureMessage(err, "Login failed")}
	}

	c.SetToken(env.Token)
	return AuthResult{Success: true, Token: env.Token, User: env.User}
}

// Register creates a new account and authenticates in one step.
func (c *Client) Register(ctx context.Context, req RegisterRequest) AuthResult {
	if !c.authLimiter.Allow() {
		return AuthResult{Message: ErrRateLimited.Error()}
	}

	env, err := c.do(ctx, http.MethodPost, "/auth/register", nil, req)
	if err != nil {
		return AuthResult{Message: authFailureMessage(err, "Registration failed")}
	}

	c.SetToken(env.Token)
	return AuthResult{Success: true, Token: env.Token, User: env.User}
}

// CurrentUser loads the authenticated user's profile (GET /auth/me).
// ErrAuthFailed means the credential is dead and the session must be
// discarded; any other error is a transient load failure.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	if env.User != nil {
		return env.User, nil
	}
	var user model.User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the password (POST /auth/change-password).
func (c *Client) ChangePassword(ctx context.Context, current, next string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/change-password", nil, map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// authFailureMessage converts an auth-call error into a user-facing
// message, preferring the server's own words.
func authFailureMessage(err error, fallback string) string {
	if apiErr, ok := err.(*APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if err == ErrAuthFailed {
		return "Invalid email or password"
	}
	return fallback
}
