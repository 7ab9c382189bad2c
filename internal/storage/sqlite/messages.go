// ABOUTME: Message storage operations for SQLite
// ABOUTME: Append-only inserts and id-ordered transcript scans
package sqlite

import (
	"github.com/harper/chambers/internal/models"
)

// MessageStore handles transcript persistence. There is deliberately no
// update or delete operation.
type MessageStore struct {
	db *DB
}

// NewMessageStore creates a new MessageStore
func NewMessageStore(db *DB) *MessageStore {
	return &MessageStore{db: db}
}

// Append inserts one message as its own committed statement and returns its id.
// An unknown chamber yields ErrMissingParent.
func (s *MessageStore) Append(m *models.Message) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO messages (chamber_id, role, body, created_at)
		VALUES (?, ?, ?, ?)
	`, m.ChamberID, string(m.Role), m.Body, m.CreatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(err)
	}
	m.ID = id
	return id, nil
}

// ListSince returns the messages of a chamber with id greater than afterID,
// ascending by id. afterID 0 returns the whole transcript.
func (s *MessageStore) ListSince(chamberID, afterID int64) ([]models.Message, error) {
	rows, err := s.db.Query(`
		SELECT id, chamber_id, role, body, created_at
		FROM messages
		WHERE chamber_id = ? AND id > ?
		ORDER BY id ASC
	`, chamberID, afterID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var messages []models.Message
	for rows.Next() {
		var (
			m    models.Message
			role string
		)
		if err := rows.Scan(&m.ID, &m.ChamberID, &role, &m.Body, &m.CreatedAt); err != nil {
			return nil, classify(err)
		}
		m.Role = models.Role(role)
		messages = append(messages, m)
	}
	return messages, classify(rows.Err())
}

// Count returns the transcript length of a chamber
func (s *MessageStore) Count(chamberID int64) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM messages WHERE chamber_id = ?", chamberID).Scan(&n)
	return n, classify(err)
}

// Owner returns the account key owning the chamber a message belongs to
func (s *MessageStore) Owner(chamberID int64) (string, error) {
	var key string
	err := s.db.QueryRow("SELECT account_key FROM chambers WHERE id = ?", chamberID).Scan(&key)
	return key, classify(err)
}
