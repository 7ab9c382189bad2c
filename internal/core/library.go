// ABOUTME: Reference library index of PDF assets found on disk
// ABOUTME: Each filename is indexed once; later changes to the file are not picked up
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/metrics"
	"github.com/harper/chambers/internal/models"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// Extractor reads size and page metadata from a document on disk
type Extractor interface {
	Extract(path string) (models.AssetMeta, error)
}

// Library keeps the asset index in step with a directory
type Library struct {
	store     *sqlite.Storage
	extractor Extractor
	dir       string
	audit     *AuditLog
	log       *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewLibrary creates a Library rooted at dir
func NewLibrary(store *sqlite.Storage, extractor Extractor, dir string, audit *AuditLog, log *logger.Logger, m *metrics.Metrics) *Library {
	return &Library{
		store:     store,
		extractor: extractor,
		dir:       dir,
		audit:     audit,
		log:       logger.OrNop(log).With("component", "library"),
		metrics:   m,
		now:       time.Now,
	}
}

// Dir returns the library directory
func (l *Library) Dir() string {
	return l.dir
}

// Sync indexes every filename not already in the index and returns how many
// were added. A file that cannot be read, or that another sync indexed first,
// is skipped without failing the rest.
func (l *Library) Sync(filenames []string) (int, error) {
	if l.extractor == nil {
		return 0, errors.New("library has no extractor configured")
	}
	known, err := l.store.Assets().Filenames()
	if err != nil {
		return 0, storeErr("failed to read asset index", err)
	}

	indexed := 0
	for _, name := range filenames {
		if _, ok := known[name]; ok {
			continue
		}

		meta, err := l.extractor.Extract(filepath.Join(l.dir, name))
		if err != nil {
			l.metrics.AssetSkipped()
			l.log.Warn("failed to read asset, skipping", "file", name, "error", err)
			continue
		}

		err = l.store.Assets().Insert(&models.Asset{
			Filename:  name,
			SizeKB:    meta.SizeKB,
			Pages:     meta.Pages,
			IndexedAt: l.now().UTC(),
			Status:    models.AssetStatusVerified,
		})
		switch {
		case err == nil:
			known[name] = struct{}{}
			indexed++
		case errors.Is(err, sqlite.ErrConflict):
			l.log.Debug("asset indexed concurrently, skipping", "file", name)
		default:
			return indexed, storeErr(fmt.Sprintf("failed to index %s", name), err)
		}
	}

	l.metrics.AssetsIndexed(indexed)
	return indexed, nil
}

// SyncDir indexes the PDF files in the library directory, creating the
// directory if it does not exist yet
func (l *Library) SyncDir() (int, error) {
	names, err := l.listPDFs()
	if err != nil {
		return 0, err
	}

	n, err := l.Sync(names)
	if n > 0 {
		l.audit.Record("", models.EventLibrarySync, fmt.Sprintf("Synchronized %d new legal assets", n))
		l.log.Info("library synchronized", "indexed", n)
	}
	return n, err
}

// List returns the indexed assets ordered by filename
func (l *Library) List() ([]models.Asset, error) {
	assets, err := l.store.Assets().List()
	if err != nil {
		return nil, storeErr("failed to list assets", err)
	}
	return assets, nil
}

func (l *Library) listPDFs() ([]string, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read library directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
