// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists teller's client-side state.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/teller-tui/internal/model"
)

// =============================================================================
// TRANSACTION CACHE
// =============================================================================

// maxCachedTransactions bounds the local cache; older rows are pruned.
const maxCachedTransactions = 500

// ErrCacheClosed is returned after Close.
var ErrCacheClosed = errors.New("transaction cache closed")

// TxCache is a local read-through cache of fetched transactions. It lets
// the transaction list paint instantly on startup and survive restarts;
// the server copy is always authoritative and overwrites cached rows.
type TxCache struct {
	db *sql.DB
}

// OpenTxCache opens (creating if needed) the transaction cache database.
func OpenTxCache(baseDir string) (*TxCache, error) {
	db, err := sql.Open("sqlite", filepath.Join(baseDir, "transactions.db"))
	if err != nil {
		return nil, err
	}

	// Single writer; the TUI event loop is the only client.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		transaction_id TEXT PRIMARY KEY,
		type           TEXT NOT NULL,
		status         TEXT NOT NULL,
		amount         REAL NOT NULL,
		description    TEXT,
		from_account   TEXT,
		to_account     TEXT,
		created_at     INTEGER NOT NULL,
		updated_at     INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_created ON transactions(created_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &TxCache{db: db}, nil
}

// Close releases the database handle.
func (c *TxCache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Put upserts fetched transactions and prunes the cache to its bound.
func (c *TxCache) Put(ctx context.Context, txns []model.Transaction) error {
	if c.db == nil {
		return ErrCacheClosed
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions
			(transaction_id, type, status, amount, description, from_account, to_account, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(transaction_id) DO UPDATE SET
			type = excluded.type,
			status = excluded.status,
			amount = excluded.amount,
			description = excluded.description,
			from_account = excluded.from_account,
			to_account = excluded.to_account,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range txns {
		var updated int64
		if !t.UpdatedAt.IsZero() {
			updated = t.UpdatedAt.UnixMilli()
		}
		if _, err := stmt.ExecContext(ctx,
			t.TransactionID, t.Type, t.Status, t.Amount, t.Description,
			t.FromAccount, t.ToAccount, t.CreatedAt.UnixMilli(), updated,
		); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM transactions WHERE transaction_id NOT IN (
			SELECT transaction_id FROM transactions ORDER BY created_at DESC LIMIT ?
		)`, maxCachedTransactions); err != nil {
		return err
	}

	return tx.Commit()
}

// Recent returns up to limit cached transactions, newest first.
func (c *TxCache) Recent(ctx context.Context, limit int) ([]model.Transaction, error) {
	if c.db == nil {
		return nil, ErrCacheClosed
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT transaction_id, type, status, amount, description,
		       from_account, to_account, created_at, updated_at
		FROM transactions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var created, updated int64
		if err := rows.Scan(&t.TransactionID, &t.Type, &t.Status, &t.Amount,
			&t.Description, &t.FromAccount, &t.ToAccount, &created, &updated); err != nil {
			return nil, err
		}
		t.CreatedAt = time.UnixMilli(created)
		if updated != 0 {
			t.UpdatedAt = time.UnixMilli(updated)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// Get returns a cached transaction by ID, or sql.ErrNoRows.
func (c *TxCache) Get(ctx context.Context, id string) (*model.Transaction, error) {
	if c.db == nil {
		return nil, ErrCacheClosed
	}

	var t model.Transaction
	var created, updated int64
	err := c.db.QueryRowContext(ctx, `
		SELECT transaction_id, type, status, amount, description,
		       from_account, to_account, created_at, updated_at
		FROM transactions WHERE transaction_id = ?`, id).
		Scan(&t.TransactionID, &t.Type, &t.Status, &t.Amount,
			&t.Description, &t.FromAccount, &t.ToAccount, &created, &updated)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = time.UnixMilli(created)
	if updated != 0 {
		t.UpdatedAt = time.UnixMilli(updated)
	}
	return &t, nil
}

// Clear empties the cache. Called on logout so the next user of the
// terminal cannot browse the previous user's history.
func (c *TxCache) Clear(ctx context.Context) error {
	if c.db == nil {
		return ErrCacheClosed
	}
	_, err := c.db.ExecContext(ctx, `DELETE FROM transactions`)
	return err
}
