// ABOUTME: Unified Storage layer that wraps all SQLite stores
// ABOUTME: Single owner of the database handle shared by every component
package sqlite

import (
	"fmt"
)

// Storage manages all persistent chambers data using SQLite
type Storage struct {
	db       *DB
	accounts *AccountStore
	chambers *ChamberStore
	messages *MessageStore
	assets   *AssetStore
	audit    *AuditStore
}

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:       db,
		accounts: NewAccountStore(db),
		chambers: NewChamberStore(db),
		messages: NewMessageStore(db),
		assets:   NewAssetStore(db),
		audit:    NewAuditStore(db),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying database wrapper
func (s *Storage) DB() *DB { return s.db }

// Accounts returns the account store
func (s *Storage) Accounts() *AccountStore { return s.accounts }

// Chambers returns the chamber store
func (s *Storage) Chambers() *ChamberStore { return s.chambers }

// Messages returns the transcript store
func (s *Storage) Messages() *MessageStore { return s.messages }

// Assets returns the library asset store
func (s *Storage) Assets() *AssetStore { return s.assets }

// Audit returns the audit event store
func (s *Storage) Audit() *AuditStore { return s.audit }
