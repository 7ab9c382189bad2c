// ABOUTME: Snapshot backups of the chambers store to Charm KV
// ABOUTME: Each snapshot is a JSON export under a time-ordered key
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/google/uuid"

	"github.com/harper/chambers/internal/storage/sqlite"
)

// SnapshotPrefix namespaces snapshot keys in the KV store
const SnapshotPrefix = "snapshot:"

// ErrSnapshotNotFound is returned by Fetch for an unknown id
var ErrSnapshotNotFound = errors.New("snapshot not found")

// KV is the subset of charm's kv.KV used for backups
type KV interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Keys() ([][]byte, error)
	Sync() error
	Close() error
}

// Config holds charm connection settings
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// Snapshot describes one stored backup
type Snapshot struct {
	ID      string    `json:"id"`
	TakenAt time.Time `json:"taken_at"`
	Size    int       `json:"size"`
}

// Store pushes and lists snapshots
type Store struct {
	kv       KV
	autoSync bool
	mu       sync.Mutex
	now      func() time.Time
}

// Open connects to the charm KV database named in cfg
func Open(cfg Config) (*Store, error) {
	if cfg.Host != "" {
		// charm reads its server from the environment
		os.Setenv("CHARM_HOST", cfg.Host)
	}
	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}
	s := NewStore(db, cfg.AutoSync)
	// Pull remote snapshots on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}
	return s, nil
}

// NewStore wraps an already open KV
func NewStore(db KV, autoSync bool) *Store {
	return &Store{kv: db, autoSync: autoSync, now: time.Now}
}

// Close closes the KV database
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv == nil {
		return nil
	}
	err := s.kv.Close()
	s.kv = nil
	return err
}

// Push stores data as a new snapshot
func (s *Store) Push(data *sqlite.ExportData) (Snapshot, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv == nil {
		return Snapshot{}, errors.New("backup store is closed")
	}

	taken := s.now().UTC()
	id := taken.Format("20060102T150405Z") + "-" + uuid.NewString()[:8]
	if err := s.kv.Set([]byte(SnapshotPrefix+id), payload); err != nil {
		return Snapshot{}, fmt.Errorf("failed to store snapshot %s: %w", id, err)
	}
	if s.autoSync {
		if err := s.kv.Sync(); err != nil {
			return Snapshot{}, fmt.Errorf("snapshot %s stored locally but sync failed: %w", id, err)
		}
	}
	return Snapshot{ID: id, TakenAt: taken.Truncate(time.Second), Size: len(payload)}, nil
}

// List returns the stored snapshots, newest first
func (s *Store) List() ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv == nil {
		return nil, errors.New("backup store is closed")
	}

	keys, err := s.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var snaps []Snapshot
	for _, k := range keys {
		key := string(k)
		if !strings.HasPrefix(key, SnapshotPrefix) {
			continue
		}
		id := strings.TrimPrefix(key, SnapshotPrefix)
		snap := Snapshot{ID: id}
		if ts, _, ok := strings.Cut(id, "-"); ok {
			snap.TakenAt, _ = time.Parse("20060102T150405Z", ts)
		}
		snaps = append(snaps, snap)
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID > snaps[j].ID })
	return snaps, nil
}

// Fetch loads the snapshot with id
func (s *Store) Fetch(id string) (*sqlite.ExportData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv == nil {
		return nil, errors.New("backup store is closed")
	}

	payload, err := s.kv.Get([]byte(SnapshotPrefix + id))
	if err != nil || payload == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrSnapshotNotFound)
	}

	var data sqlite.ExportData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	return &data, nil
}

// CharmID returns the charm user id backing the KV store
func CharmID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}
