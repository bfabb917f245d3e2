// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/teller-tui/internal/model"
)

func TestStateStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStateStore(dir)
	require.NoError(t, err)

	user := &model.User{
		ID:            "u1",
		Name:          "Jane Doe",
		AccountNumber: "2844829203",
		Balance:       100,
	}
	activity := time.Now().Truncate(time.Millisecond)

	require.NoError(t, s.SetSession("tok-secret-123", user, activity))

	assert.Equal(t, "tok-secret-123", s.Token())
	got := s.User()
	require.NotNil(t, got)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, activity.UnixMilli(), s.LastActivity().UnixMilli())
}

func TestStateStoreTokenEncryptedAtRest(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStateStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.SetToken("tok-secret-123"))

	raw, err := os.ReadFile(filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tok-secret-123")
	assert.Contains(t, string(raw), EncryptedPrefix)
}

func TestStateStoreClear(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStateStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.SetSession("tok", &model.User{ID: "u1"}, time.Now()))
	require.NoError(t, s.Clear())

	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
	assert.True(t, s.LastActivity().IsZero())

	// Clearing twice is fine
	assert.NoError(t, s.Clear())
}

func TestStateStoreTamperedTokenFailsClosed(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStateStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.SetToken("tok"))

	// Corrupt the ciphertext
	path := filepath.Join(dir, "state.json")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	corrupted := strings.Replace(string(raw), EncryptedPrefix, EncryptedPrefix+"AAAA", 1)
	require.NoError(t, os.WriteFile(path, []byte(corrupted), 0600))

	assert.Empty(t, s.Token(), "tampered credential must read as absent")
}

func TestTemplateStoreCap(t *testing.T) {
	dir := t.TempDir()
	s, err := NewTemplateStore(dir)
	require.NoError(t, err)

	for i := 0; i < MaxTemplates+1; i++ {
		require.NoError(t, s.Save(Template{
			Name:      "Transfer to " + string(rune('A'+i)),
			ToAccount: "1234567890",
			Amount:    "50",
		}))
	}

	templates := s.List()
	require.Len(t, templates, MaxTemplates, "6th save must evict the oldest")
	assert.Equal(t, "Transfer to B", templates[0].Name)
	assert.Equal(t, "Transfer to F", templates[MaxTemplates-1].Name)
}

func TestTxCache(t *testing.T) {
	ctx := context.Background()
	cache, err := OpenTxCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	now := time.Now().Truncate(time.Millisecond)
	txns := []model.Transaction{
		{TransactionID: "T1", Type: model.TypeTransfer, Status: model.StatusCompleted, Amount: 50, CreatedAt: now},
		{TransactionID: "T2", Type: model.TypeCredit, Status: model.StatusPending, Amount: 20, CreatedAt: now.Add(-time.Hour)},
	}
	require.NoError(t, cache.Put(ctx, txns))

	recent, err := cache.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "T1", recent[0].TransactionID, "newest first")

	// Upsert overwrites status
	txns[1].Status = model.StatusCompleted
	require.NoError(t, cache.Put(ctx, txns[1:]))
	got, err := cache.Get(ctx, "T2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)

	require.NoError(t, cache.Clear(ctx))
	recent, err = cache.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestEncryptDecryptString(t *testing.T) {
	secret := make([]byte, keySize)
	copy(secret, "0123456789abcdef0123456789abcdef")

	enc, err := encryptString(secret, "hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, EncryptedPrefix))

	plain, err := decryptString(secret, enc)
	require.NoError(t, err)
	assert.Equal(t, "hello", plain)

	// Wrong secret fails
	other := make([]byte, keySize)
	_, err = decryptString(other, enc)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	// Garbage fails with format error
	_, err = decryptString(secret, "not-encrypted")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}
