// ABOUTME: Audit event storage operations for SQLite
// ABOUTME: Append-only operational trail with a recent-first reader
package sqlite

import (
	"database/sql"

	"github.com/harper/chambers/internal/models"
)

// AuditStore handles audit event persistence
type AuditStore struct {
	db *DB
}

// NewAuditStore creates a new AuditStore
func NewAuditStore(db *DB) *AuditStore {
	return &AuditStore{db: db}
}

// Insert appends an event. An empty AccountKey is stored as NULL.
func (s *AuditStore) Insert(e *models.AuditEvent) error {
	var key sql.NullString
	if e.AccountKey != "" {
		key = sql.NullString{String: e.AccountKey, Valid: true}
	}
	res, err := s.db.Exec(`
		INSERT INTO audit_events (account_key, kind, description, created_at)
		VALUES (?, ?, ?, ?)
	`, key, string(e.Kind), e.Description, e.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return classify(err)
	}
	e.ID = id
	return nil
}

// Recent returns up to limit events, newest first
func (s *AuditStore) Recent(limit int) ([]models.AuditEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, account_key, kind, description, created_at
		FROM audit_events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []models.AuditEvent
	for rows.Next() {
		var (
			e    models.AuditEvent
			key  sql.NullString
			kind string
		)
		if err := rows.Scan(&e.ID, &key, &kind, &e.Description, &e.CreatedAt); err != nil {
			return nil, classify(err)
		}
		e.AccountKey = key.String
		e.Kind = models.EventKind(kind)
		events = append(events, e)
	}
	return events, classify(rows.Err())
}
