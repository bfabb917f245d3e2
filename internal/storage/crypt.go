// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists teller's client-side state: the bearer
// credential, the cached user snapshot, the activity timestamp, transfer
// templates, and a local transaction cache.
package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// =============================================================================
// AT-REST CREDENTIAL ENCRYPTION
// =============================================================================

// EncryptedPrefix marks a value as encrypted (format: ENC:base64(salt|nonce|ciphertext)).
const EncryptedPrefix = "ENC:"

const (
	nonceSize = 12
	keySize   = 32
	saltSize  = 32

	// pbkdf2Iterations follows OWASP guidance for PBKDF2-SHA-256.
	pbkdf2Iterations = 600000
)

var (
	// ErrInvalidCiphertext indicates the ciphertext format is invalid.
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// ErrDecryptionFailed indicates decryption failed (wrong key or tampered data).
	ErrDecryptionFailed = errors.New("decryption failed: authentication tag mismatch")
)

// zeroBytes zeros sensitive byte slices to limit memory disclosure.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// loadDeviceSecret returns the per-device secret used to derive the at-rest
// key, creating it on first use. The secret never leaves the machine; it
// only protects the credential against casual file reads, not a compromised
// account.
func loadDeviceSecret(dir string) ([]byte, error) {
	path := filepath.Join(dir, ".device_key")

	if data, err := os.ReadFile(path); err == nil && len(data) == keySize {
		return data, nil
	}

	secret := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, fmt.Errorf("failed to generate device secret: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, secret, 0600); err != nil {
		return nil, fmt.Errorf("failed to store device secret: %w", err)
	}
	return secret, nil
}

// encryptString encrypts a plaintext with AES-256-GCM under a key derived
// from the device secret via PBKDF2-SHA-256 with a fresh salt.
func encryptString(secret []byte, plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key(secret, salt, pbkdf2Iterations, keySize, sha256.New)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	buf := make([]byte, 0, saltSize+nonceSize+len(sealed))
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, sealed...)

	return EncryptedPrefix + base64.StdEncoding.EncodeToString(buf), nil
}

// decryptString reverses encryptString.
func decryptString(secret []byte, value string) (string, error) {
	if !strings.HasPrefix(value, EncryptedPrefix) {
		return "", ErrInvalidCiphertext
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, EncryptedPrefix))
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(raw) < saltSize+nonceSize+1 {
		return "", ErrInvalidCiphertext
	}

	salt := raw[:saltSize]
	nonce := raw[saltSize : saltSize+nonceSize]
	sealed := raw[saltSize+nonceSize:]

	key := pbkdf2.Key(secret, salt, pbkdf2Iterations, keySize, sha256.New)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}
