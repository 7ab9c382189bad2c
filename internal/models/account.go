// ABOUTME: Account represents a registered counsel in the chambers registry
// ABOUTME: Holds identity, soft status and usage counters
package models

import (
	"errors"
	"strings"
	"time"
)

// AccountStatus is the soft lifecycle status of an account
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
)

// DefaultTier is assigned to every new account
const DefaultTier = "Senior Counsel"

// Account is a registered user. Accounts are never hard-deleted.
type Account struct {
	Key          string        `json:"key"`
	DisplayName  string        `json:"display_name"`
	SecretHash   string        `json:"-"`
	Tier         string        `json:"tier"`
	Status       AccountStatus `json:"status"`
	QueryCount   int           `json:"query_count"`
	LoginCount   int           `json:"login_count"`
	CreatedAt    time.Time     `json:"created_at"`
	LastActiveAt time.Time     `json:"last_active_at"`
}

// Validate checks the fields required before an account can be stored
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Key) == "" {
		return errors.New("account key cannot be empty")
	}
	if a.SecretHash == "" {
		return errors.New("account secret cannot be empty")
	}
	if a.Status != AccountActive && a.Status != AccountSuspended {
		return errors.New("invalid account status")
	}
	return nil
}

// IsActive reports whether the account may sign in
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}
