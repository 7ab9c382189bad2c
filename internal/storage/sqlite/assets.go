// ABOUTME: Library asset storage operations for SQLite
// ABOUTME: Insert-if-absent records keyed by filename
package sqlite

import (
	"github.com/harper/chambers/internal/models"
)

// AssetStore handles library asset persistence
type AssetStore struct {
	db *DB
}

// NewAssetStore creates a new AssetStore
func NewAssetStore(db *DB) *AssetStore {
	return &AssetStore{db: db}
}

// Filenames returns the set of indexed filenames
func (s *AssetStore) Filenames() (map[string]struct{}, error) {
	rows, err := s.db.Query("SELECT filename FROM assets")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	names := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, classify(err)
		}
		names[name] = struct{}{}
	}
	return names, classify(rows.Err())
}

// Insert stores a new asset. An existing filename yields ErrConflict and
// the stored record is left untouched.
func (s *AssetStore) Insert(a *models.Asset) error {
	status := a.Status
	if status == "" {
		status = models.AssetStatusVerified
		a.Status = status
	}
	_, err := s.db.Exec(`
		INSERT INTO assets (filename, size_kb, pages, indexed_at, status)
		VALUES (?, ?, ?, ?, ?)
	`, a.Filename, a.SizeKB, a.Pages, a.IndexedAt, status)
	return err
}

// List returns every indexed asset ordered by filename
func (s *AssetStore) List() ([]models.Asset, error) {
	rows, err := s.db.Query(`
		SELECT filename, size_kb, pages, indexed_at, status
		FROM assets
		ORDER BY filename ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.Filename, &a.SizeKB, &a.Pages, &a.IndexedAt, &a.Status); err != nil {
			return nil, classify(err)
		}
		assets = append(assets, a)
	}
	return assets, classify(rows.Err())
}

// Count returns the number of indexed assets
func (s *AssetStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM assets").Scan(&n)
	return n, classify(err)
}
