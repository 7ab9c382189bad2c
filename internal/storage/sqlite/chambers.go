// ABOUTME: Chamber storage operations for SQLite
// ABOUTME: Create, list, resolve-by-label and archive conversation threads
package sqlite

import (
	"database/sql"
	"errors"

	"github.com/harper/chambers/internal/models"
)

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// ChamberStore handles chamber persistence
type ChamberStore struct {
	db *DB
}

// NewChamberStore creates a new ChamberStore
func NewChamberStore(db *DB) *ChamberStore {
	return &ChamberStore{db: db}
}

func insertChamber(ex execer, c *models.Chamber) (int64, error) {
	kind := c.Kind
	if kind == "" {
		kind = models.DefaultChamberKind
		c.Kind = kind
	}
	res, err := ex.Exec(`
		INSERT INTO chambers (account_key, label, kind, archived, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.AccountKey, c.Label, kind, c.Archived, c.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Create inserts a chamber. An unknown account yields ErrMissingParent.
func (s *ChamberStore) Create(c *models.Chamber) error {
	if err := c.Validate(); err != nil {
		return err
	}
	id, err := insertChamber(s.db, c)
	if err != nil {
		return classify(err)
	}
	c.ID = id
	return nil
}

// Get retrieves a chamber by id. Returns nil, nil when absent.
func (s *ChamberStore) Get(id int64) (*models.Chamber, error) {
	var c models.Chamber
	err := s.db.QueryRow(`
		SELECT id, account_key, label, kind, archived, created_at
		FROM chambers
		WHERE id = ?
	`, id).Scan(&c.ID, &c.AccountKey, &c.Label, &c.Kind, &c.Archived, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

// ListByAccount returns the account's chambers, most recent first
func (s *ChamberStore) ListByAccount(accountKey string, includeArchived bool) ([]models.Chamber, error) {
	query := `
		SELECT id, account_key, label, kind, archived, created_at
		FROM chambers
		WHERE account_key = ?`
	if !includeArchived {
		query += " AND archived = 0"
	}
	query += " ORDER BY id DESC"

	rows, err := s.db.Query(query, accountKey)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var chambers []models.Chamber
	for rows.Next() {
		var c models.Chamber
		if err := rows.Scan(&c.ID, &c.AccountKey, &c.Label, &c.Kind, &c.Archived, &c.CreatedAt); err != nil {
			return nil, classify(err)
		}
		chambers = append(chambers, c)
	}
	return chambers, classify(rows.Err())
}

// ResolveID maps a label to a chamber id. When several chambers share the
// label the smallest id wins. Returns 0, sql.ErrNoRows when nothing matches.
func (s *ChamberStore) ResolveID(accountKey, label string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		SELECT id FROM chambers
		WHERE account_key = ? AND label = ?
		ORDER BY id ASC
		LIMIT 1
	`, accountKey, label).Scan(&id)
	if err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// SetArchived flips the archival flag of a chamber owned by accountKey.
// Returns sql.ErrNoRows if no such chamber belongs to the account.
func (s *ChamberStore) SetArchived(accountKey string, id int64, archived bool) error {
	res, err := s.db.Exec(`
		UPDATE chambers SET archived = ?
		WHERE id = ? AND account_key = ?
	`, archived, id, accountKey)
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

// Count returns the number of chambers owned by accountKey, archived included
func (s *ChamberStore) Count(accountKey string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM chambers WHERE account_key = ?", accountKey).Scan(&n)
	return n, classify(err)
}
