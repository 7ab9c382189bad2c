// ABOUTME: Chamber is a conversation thread owned by one account
// ABOUTME: Chambers are archived by flag, never physically removed
package models

import (
	"errors"
	"strings"
	"time"
)

const (
	// DefaultChamberLabel is the label of the chamber created at registration
	DefaultChamberLabel = "General Chamber"
	// FederatedChamberLabel is the label of the chamber created on first federated sign-in
	FederatedChamberLabel = "Federated Chamber"
	// DefaultChamberKind is the kind assigned to new chambers
	DefaultChamberKind = "General Litigation"
)

// Chamber is one conversation's scoped message sequence.
// Labels are not unique per account; ID is the authoritative handle.
type Chamber struct {
	ID         int64     `json:"id"`
	AccountKey string    `json:"account_key"`
	Label      string    `json:"label"`
	Kind       string    `json:"kind"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks a chamber before insert
func (c *Chamber) Validate() error {
	if strings.TrimSpace(c.AccountKey) == "" {
		return errors.New("chamber account key cannot be empty")
	}
	if strings.TrimSpace(c.Label) == "" {
		return errors.New("chamber label cannot be empty")
	}
	return nil
}
