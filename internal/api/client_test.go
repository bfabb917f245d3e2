// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL)
	client.httpClient = srv.Client()
	return srv, client
}

func TestLoginSuccess(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"id": "u1", "name": "Jane", "balance": 100.0},
		})
	})

	result := client.Login(context.Background(), "jane@example.com", "hunter22")

	require.True(t, result.Success)
	assert.Equal(t, "tok-1", result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, "Jane", result.User.Name)
	assert.True(t, client.HasToken(), "credential installed on success")
}

func TestLoginRejectedSurfacesServerMessage(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"message": "Account locked"})
	})

	result := client.Login(context.Background(), "jane@example.com", "bad")

	assert.False(t, result.Success)
	assert.Equal(t, "Account locked", result.Message)
	assert.False(t, client.HasToken())
}

func TestLoginRateLimited(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	// Exhaust the burst, then the limiter must trip without a request.
	for i := 0; i < loginBurst; i++ {
		client.Login(context.Background(), "jane@example.com", "bad")
	}
	result := client.Login(context.Background(), "jane@example.com", "bad")
	assert.Equal(t, ErrRateLimited.Error(), result.Message)
}

func TestCurrentUserAuthFailure(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client.SetToken("stale")

	_, err := client.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestCurrentUserSendsBearer(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": "u1", "accountNumber": "2844829203"},
		})
	})
	client.SetToken("tok-9")

	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2844829203", user.AccountNumber)
}

func TestTransferSuccess(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions/transfer", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1234567890", body["toAccount"])
		assert.Equal(t, 50.0, body["amount"])

		json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"data":       map[string]any{"transactionId": "T1", "status": "completed"},
			"newBalance": 50.0,
		})
	})
	client.SetToken("tok")

	result := client.Transfer(context.Background(), "1234567890", 50, "rent")

	require.True(t, result.Success)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, "T1", result.Transaction.TransactionID)
	assert.Equal(t, "completed", result.Transaction.Status)
	assert.Equal(t, 50.0, result.NewBalance)
}

func TestTransferRejectionIsAValue(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"message": "Recipient account not found"})
	})
	client.SetToken("tok")

	result := client.Transfer(context.Background(), "0000000000", 50, "")

	assert.False(t, result.Success)
	assert.Equal(t, "Recipient account not found", result.Message)
}

func TestTransferNetworkErrorGenericMessage(t *testing.T) {
	srv, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // force a transport error

	result := client.Transfer(context.Background(), "1234567890", 50, "")

	assert.False(t, result.Success)
	assert.Equal(t, "Transfer failed. Please try again.", result.Message)
}

func TestTransactionsQueryParams(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "completed", q.Get("status"))
		assert.Equal(t, "transfer", q.Get("type"))
		assert.Equal(t, "2", q.Get("page"))

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"transactionId": "T1", "type": "transfer", "status": "completed", "amount": 50.0},
			},
		})
	})
	client.SetToken("tok")

	txns, err := client.Transactions(context.Background(), TransactionQuery{
		Page: 2, Status: "completed", Type: "transfer",
	})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "T1", txns[0].TransactionID)
}

func TestNotConfigured(t *testing.T) {
	client := NewClient("")
	_, err := client.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
