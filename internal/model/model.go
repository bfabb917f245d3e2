// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain records exchanged with the banking API.
package model

import "time"

// =============================================================================
// USER
// =============================================================================

// User is the authenticated user's profile as reported by the API.
// Balance is authoritative only as of the last profile refresh.
type User struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	AccountNumber string   `json:"accountNumber"`
	Balance       float64  `json:"balance"`
	Status        string   `json:"status"`
	Phone         string   `json:"phone,omitempty"`
	Address       *Address `json:"address,omitempty"`

	// Roles carried by the profile, if the server supplies any.
	// Access checks fail closed when a view requires roles and this is empty.
	Roles []string `json:"roles,omitempty"`
}

// Address is a typed postal address. The registration form binds to these
// fields directly rather than mutating string-keyed paths.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction statuses reported by the API.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusScheduled = "scheduled"
)

// Transaction types reported by the API.
const (
	TypeCredit   = "credit"
	TypeDebit    = "debit"
	TypeTransfer = "transfer"
)

// Transaction is a server-confirmed transaction record.
type Transaction struct {
	TransactionID string    `json:"transactionId"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	FromAccount   string    `json:"fromAccount,omitempty"`
	ToAccount     string    `json:"toAccount,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// IsDebitLike reports whether the transaction moves money out of the
// account (debits and outgoing transfers).
func (t *Transaction) IsDebitLike() bool {
	return t.Type == TypeDebit || t.Type == TypeTransfer
}

// =============================================================================
// DASHBOARD
// =============================================================================

// DashboardStats summarizes account activity for the dashboard screen.
type DashboardStats struct {
	TotalSpent    float64 `json:"totalSpent"`
	TotalReceived float64 `json:"totalReceived"`
}

// Dashboard is the payload of GET /account/dashboard.
type Dashboard struct {
	Stats              DashboardStats `json:"stats"`
	NetWorth           float64        `json:"netWorth"`
	CreditScore        int            `json:"creditScore"`
	RecentTransactions []Transaction  `json:"recentTransactions"`
}
