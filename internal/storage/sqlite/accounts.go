// ABOUTME: Account storage operations for SQLite
// ABOUTME: Registration inserts the account and its first chamber in one transaction
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harper/chambers/internal/models"
)

// AccountStore handles account persistence
type AccountStore struct {
	db *DB
}

// NewAccountStore creates a new AccountStore
func NewAccountStore(db *DB) *AccountStore {
	return &AccountStore{db: db}
}

// CreateWithChamber inserts the account and a first chamber atomically.
// A duplicate key yields ErrConflict and leaves no rows behind.
func (s *AccountStore) CreateWithChamber(account *models.Account, chamber *models.Chamber) error {
	if err := account.Validate(); err != nil {
		return err
	}
	chamber.AccountKey = account.Key
	if err := chamber.Validate(); err != nil {
		return err
	}

	return s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO accounts (key, display_name, secret_hash, tier, status, query_count, login_count, created_at, last_active_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, account.Key, account.DisplayName, account.SecretHash, account.Tier, string(account.Status),
			account.QueryCount, account.LoginCount, account.CreatedAt, account.LastActiveAt)
		if err != nil {
			return err
		}

		id, err := insertChamber(tx, chamber)
		if err != nil {
			return err
		}
		chamber.ID = id
		return nil
	})
}

// Get retrieves an account by key. Returns nil, nil when absent.
func (s *AccountStore) Get(key string) (*models.Account, error) {
	var (
		account models.Account
		status  string
	)

	err := s.db.QueryRow(`
		SELECT key, display_name, secret_hash, tier, status, query_count, login_count, created_at, last_active_at
		FROM accounts
		WHERE key = ?
	`, key).Scan(&account.Key, &account.DisplayName, &account.SecretHash, &account.Tier, &status,
		&account.QueryCount, &account.LoginCount, &account.CreatedAt, &account.LastActiveAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}

	account.Status = models.AccountStatus(status)
	return &account, nil
}

// Exists reports whether an account with key is registered
func (s *AccountStore) Exists(key string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM accounts WHERE key = ?", key).Scan(&n); err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

// RecordLogin bumps last activity and the login counter
func (s *AccountStore) RecordLogin(key string, at time.Time) error {
	_, err := s.db.Exec(`
		UPDATE accounts
		SET last_active_at = ?, login_count = login_count + 1
		WHERE key = ?
	`, at, key)
	return err
}

// IncrementQueries bumps the usage counter for a user-authored message
func (s *AccountStore) IncrementQueries(key string) error {
	_, err := s.db.Exec("UPDATE accounts SET query_count = query_count + 1 WHERE key = ?", key)
	return err
}

// SetStatus changes the soft status of an account
func (s *AccountStore) SetStatus(key string, status models.AccountStatus) error {
	res, err := s.db.Exec("UPDATE accounts SET status = ? WHERE key = ?", string(status), key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stats returns the number of accounts and the sum of their query counters
func (s *AccountStore) Stats() (accounts int, queries int, err error) {
	err = s.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(query_count), 0) FROM accounts").Scan(&accounts, &queries)
	return accounts, queries, classify(err)
}

// ListAll returns every account ordered by creation
func (s *AccountStore) ListAll() ([]models.Account, error) {
	rows, err := s.db.Query(`
		SELECT key, display_name, secret_hash, tier, status, query_count, login_count, created_at, last_active_at
		FROM accounts
		ORDER BY created_at ASC, key ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var accounts []models.Account
	for rows.Next() {
		var (
			account models.Account
			status  string
		)
		if err := rows.Scan(&account.Key, &account.DisplayName, &account.SecretHash, &account.Tier, &status,
			&account.QueryCount, &account.LoginCount, &account.CreatedAt, &account.LastActiveAt); err != nil {
			return nil, classify(err)
		}
		account.Status = models.AccountStatus(status)
		accounts = append(accounts, account)
	}
	return accounts, classify(rows.Err())
}
