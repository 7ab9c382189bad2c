// ABOUTME: Best-effort audit log of security and system events
// ABOUTME: Write failures are logged and counted, never returned
package core

import (
	"time"

	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/metrics"
	"github.com/harper/chambers/internal/models"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// AuditLog records events. A nil *AuditLog records nothing.
type AuditLog struct {
	store   *sqlite.AuditStore
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewAuditLog creates an AuditLog over the given store
func NewAuditLog(store *sqlite.AuditStore, log *logger.Logger, m *metrics.Metrics) *AuditLog {
	return &AuditLog{
		store:   store,
		log:     logger.OrNop(log).With("component", "audit"),
		metrics: m,
		now:     time.Now,
	}
}

// Record appends one event. accountKey may be empty for system events.
func (a *AuditLog) Record(accountKey string, kind models.EventKind, description string) {
	if a == nil {
		return
	}
	err := a.store.Insert(&models.AuditEvent{
		AccountKey:  accountKey,
		Kind:        kind,
		Description: description,
		CreatedAt:   a.now().UTC(),
	})
	if err != nil {
		a.metrics.AuditDropped()
		a.log.Warn("failed to record audit event", "kind", kind, "account", accountKey, "error", err)
	}
}

// Recent returns up to limit events, newest first
func (a *AuditLog) Recent(limit int) ([]models.AuditEvent, error) {
	events, err := a.store.Recent(limit)
	if err != nil {
		return nil, storeErr("failed to read audit log", err)
	}
	return events, nil
}
