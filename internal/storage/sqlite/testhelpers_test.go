// ABOUTME: Shared fixtures for SQLite store tests
// ABOUTME: In-memory storage and seeded accounts with their default chamber
package sqlite

import (
	"testing"
	"time"

	"github.com/harper/chambers/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedAccount(t *testing.T, s *Storage, key string) *models.Chamber {
	t.Helper()
	now := time.Now().UTC()
	account := &models.Account{
		Key:          key,
		DisplayName:  "Test " + key,
		SecretHash:   "hash",
		Tier:         models.DefaultTier,
		Status:       models.AccountActive,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	chamber := &models.Chamber{Label: models.DefaultChamberLabel, CreatedAt: now}
	if err := s.Accounts().CreateWithChamber(account, chamber); err != nil {
		t.Fatalf("CreateWithChamber(%s) error = %v", key, err)
	}
	return chamber
}
