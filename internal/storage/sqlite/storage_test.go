// ABOUTME: Tests for unified Storage wrapper
// ABOUTME: Verifies the facade shares one handle and persists across reopen
package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/harper/chambers/internal/models"
)

func TestStorageInMemory(t *testing.T) {
	store := newTestStorage(t)

	if store.DB() == nil {
		t.Fatal("DB() should not be nil")
	}
	for name, ok := range map[string]bool{
		"accounts": store.Accounts() != nil,
		"chambers": store.Chambers() != nil,
		"messages": store.Messages() != nil,
		"assets":   store.Assets() != nil,
		"audit":    store.Audit() != nil,
	} {
		if !ok {
			t.Errorf("%s store should not be nil", name)
		}
	}

	accounts, queries, err := store.Accounts().Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if accounts != 0 || queries != 0 {
		t.Errorf("Stats() = %d, %d on a fresh store", accounts, queries)
	}
}

func TestStorageWithPath_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chambers.db")

	store, err := NewStorageWithPath(path)
	if err != nil {
		t.Fatalf("NewStorageWithPath() error = %v", err)
	}
	chamber := seedAccount(t, store, "ann@example.com")
	if _, err := store.Messages().Append(&models.Message{ChamberID: chamber.ID, Role: models.RoleUser, Body: "first"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewStorageWithPath(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	if reopened.DB().Path() != path {
		t.Errorf("Path() = %q, want %q", reopened.DB().Path(), path)
	}
	msgs, err := reopened.Messages().ListSince(chamber.ID, 0)
	if err != nil {
		t.Fatalf("ListSince() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0].Body != "first" {
		t.Errorf("messages after reopen = %+v", msgs)
	}
}

func TestStorageClose_Nil(t *testing.T) {
	s := &Storage{}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on empty storage error = %v", err)
	}
}
