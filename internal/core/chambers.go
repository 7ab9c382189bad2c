// ABOUTME: Chamber registry: the conversation threads owned by an account
// ABOUTME: Chambers are listed newest first and archived, never deleted
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/models"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// ChamberRegistry manages chambers
type ChamberRegistry struct {
	store *sqlite.Storage
	audit *AuditLog
	log   *logger.Logger
	now   func() time.Time
}

// NewChamberRegistry creates a ChamberRegistry
func NewChamberRegistry(store *sqlite.Storage, audit *AuditLog, log *logger.Logger) *ChamberRegistry {
	return &ChamberRegistry{
		store: store,
		audit: audit,
		log:   logger.OrNop(log).With("component", "chambers"),
		now:   time.Now,
	}
}

// List returns the account's chambers, most recently created first
func (c *ChamberRegistry) List(accountKey string, includeArchived bool) ([]models.Chamber, error) {
	chambers, err := c.store.Chambers().ListByAccount(accountKey, includeArchived)
	if err != nil {
		return nil, storeErr("failed to list chambers", err)
	}
	return chambers, nil
}

// Find returns the account's unarchived chambers whose label contains query,
// ignoring case. An empty query matches everything.
func (c *ChamberRegistry) Find(accountKey, query string) ([]models.Chamber, error) {
	chambers, err := c.List(accountKey, false)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return chambers, nil
	}

	var matched []models.Chamber
	for _, ch := range chambers {
		if strings.Contains(strings.ToLower(ch.Label), query) {
			matched = append(matched, ch)
		}
	}
	return matched, nil
}

// Create adds a chamber for an existing account
func (c *ChamberRegistry) Create(accountKey, label string) (*models.Chamber, error) {
	accountKey = strings.TrimSpace(accountKey)
	if accountKey == "" {
		return nil, fmt.Errorf("account key cannot be empty: %w", ErrInvalid)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("chamber label cannot be empty: %w", ErrInvalid)
	}

	chamber := &models.Chamber{
		AccountKey: accountKey,
		Label:      label,
		Kind:       models.DefaultChamberKind,
		CreatedAt:  c.now().UTC(),
	}
	if err := c.store.Chambers().Create(chamber); err != nil {
		return nil, storeErr("failed to create chamber", err)
	}

	c.audit.Record(accountKey, models.EventChamberCreated, fmt.Sprintf("Chamber %q opened", label))
	c.log.Debug("chamber created", "account", accountKey, "chamber", chamber.ID)
	return chamber, nil
}

// Resolve maps a label to a chamber id. Labels are not unique; the oldest
// matching chamber wins.
func (c *ChamberRegistry) Resolve(accountKey, label string) (int64, error) {
	id, err := c.store.Chambers().ResolveID(accountKey, label)
	if err != nil {
		return 0, storeErr(fmt.Sprintf("failed to resolve chamber %q", label), err)
	}
	return id, nil
}

// Archive hides a chamber from default listings. Its transcript is kept.
func (c *ChamberRegistry) Archive(accountKey string, id int64) error {
	if err := c.store.Chambers().SetArchived(accountKey, id, true); err != nil {
		return storeErr("failed to archive chamber", err)
	}
	c.audit.Record(accountKey, models.EventChamberArchived, fmt.Sprintf("Chamber %d archived", id))
	return nil
}

// Get returns a chamber by id
func (c *ChamberRegistry) Get(id int64) (*models.Chamber, error) {
	chamber, err := c.store.Chambers().Get(id)
	if err != nil {
		return nil, storeErr("failed to load chamber", err)
	}
	if chamber == nil {
		return nil, ErrNotFound
	}
	return chamber, nil
}

// Owned returns the chamber if it belongs to accountKey, ErrNotFound otherwise
func (c *ChamberRegistry) Owned(accountKey string, id int64) (*models.Chamber, error) {
	chamber, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	if chamber.AccountKey != accountKey {
		return nil, ErrNotFound
	}
	return chamber, nil
}
