// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the client for the remote banking REST API.
//
// The API owns all money movement and balance authority; this client only
// shuttles requests and surfaces results. Every remote failure is reported
// as a value the UI can render; the caller never sees a panic, and
// transfer-style operations fold failures into their result type.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/teller-tui/internal/model"
)

// Configuration constants for the banking API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB limit

	// loginBurst and loginRefill shape the client-side limiter on
	// authentication attempts.
	loginBurst  = 3
	loginRefill = 10 * time.Second
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client for all banking API requests.
// SECURITY: TLS verification required; TLS 1.2 floor.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// Error variables for common API errors.
var (
	// ErrNotConfigured indicates no base URL is configured.
	ErrNotConfigured = errors.New("banking API base URL not configured")

	// ErrAuthFailed indicates the credential was missing, invalid, or
	// expired. Callers treat this as fail-closed: discard the session.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates the client-side attempt limiter tripped.
	ErrRateLimited = errors.New("too many attempts, wait a moment and try again")
)

// APIError represents an error response from the banking API.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("banking API error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("banking API error (HTTP %d)", e.Status)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the banking REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration

	mu    sync.RWMutex
	token string

	// authLimiter throttles login/registration attempts so a stuck form
	// cannot hammer the auth endpoint.
	authLimiter *rate.Limiter
}

// NewClient creates a new banking API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  sharedHTTPClient,
		timeout:     DefaultTimeout,
		authLimiter: rate.NewLimiter(rate.Every(loginRefill), loginBurst),
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// SetToken installs the bearer credential used on authenticated requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Ping probes API reachability without credentials. The dashboard
// endpoint answering 401 still proves the server is up.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/account/dashboard", nil, nil)
	if errors.Is(err, ErrAuthFailed) {
		return nil
	}
	return err
}

// HasToken reports whether a credential is installed.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// =============================================================================
// SECURE LOGGING
// =============================================================================

// logRequest logs an API request without exposing sensitive data.
// Never logs headers (contain auth) or bodies (contain account data).
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status code and duration only.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// envelope is the API's standard response wrapper.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Token      string          `json:"token,omitempty"`
	User       *model.User     `json:"user,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	NewBalance float64         `json:"newBalance,omitempty"`
}

// do performs one request and decodes the standard envelope. There is no
// automatic retry: remote failures surface immediately and the user
// decides whether to try again.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "teller/"+Version)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON error page still maps to a typed error below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrAuthFailed
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

// decodeData unmarshals the envelope's data payload into out.
func decodeData(env *envelope, out any) error {
	if len(env.Data) == 0 {
		return errors.New("empty response payload")
	}
	return json.Unmarshal(env.Data, out)
}

// Version is the client version reported in the User-Agent header.
// Overwritten at build time from main.
var Version = "dev"
