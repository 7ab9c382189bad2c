// ABOUTME: Transcript ledger: append-only messages per chamber
// ABOUTME: Each append is one committed write; ids order the transcript
package core

import (
	"fmt"
	"time"

	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/metrics"
	"github.com/harper/chambers/internal/models"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// Ledger appends and reads chamber transcripts
type Ledger struct {
	store   *sqlite.Storage
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewLedger creates a Ledger
func NewLedger(store *sqlite.Storage, log *logger.Logger, m *metrics.Metrics) *Ledger {
	return &Ledger{
		store:   store,
		log:     logger.OrNop(log).With("component", "ledger"),
		metrics: m,
		now:     time.Now,
	}
}

// Append writes one message and returns its id. User messages also bump the
// owner's query counter; a failure there is logged and does not fail the append.
func (l *Ledger) Append(chamberID int64, role models.Role, body string) (int64, error) {
	if !role.Valid() {
		return 0, fmt.Errorf("unknown role %q: %w", role, ErrInvalid)
	}

	msg := &models.Message{
		ChamberID: chamberID,
		Role:      role,
		Body:      body,
		CreatedAt: l.now().UTC(),
	}
	id, err := l.store.Messages().Append(msg)
	if err != nil {
		return 0, storeErr(fmt.Sprintf("failed to append to chamber %d", chamberID), err)
	}
	l.metrics.MessageAppended(string(role))

	if role == models.RoleUser {
		l.countQuery(chamberID)
	}
	return id, nil
}

// ReadAll returns the whole transcript in append order. An unknown chamber
// has an empty transcript.
func (l *Ledger) ReadAll(chamberID int64) ([]models.Message, error) {
	return l.ReadSince(chamberID, 0)
}

// ReadSince returns the messages appended after afterID, in append order
func (l *Ledger) ReadSince(chamberID, afterID int64) ([]models.Message, error) {
	msgs, err := l.store.Messages().ListSince(chamberID, afterID)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("failed to read chamber %d", chamberID), err)
	}
	return msgs, nil
}

// Count returns the number of messages in a chamber
func (l *Ledger) Count(chamberID int64) (int, error) {
	n, err := l.store.Messages().Count(chamberID)
	if err != nil {
		return 0, storeErr(fmt.Sprintf("failed to count chamber %d", chamberID), err)
	}
	return n, nil
}

func (l *Ledger) countQuery(chamberID int64) {
	owner, err := l.store.Messages().Owner(chamberID)
	if err == nil {
		err = l.store.Accounts().IncrementQueries(owner)
	}
	if err != nil {
		l.log.Warn("failed to increment query counter", "chamber", chamberID, "error", err)
	}
}
