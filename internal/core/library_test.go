// ABOUTME: Tests for the asset library
// ABOUTME: Verifies index-once sync, skipped files and directory scans
package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/chambers/internal/models"
)

func TestLibrary_IdempotentSync(t *testing.T) {
	svc := newTestServices(t, Options{})
	files := []string{"ipc.pdf", "crpc.pdf", "evidence.pdf"}

	n, err := svc.Library.Sync(files)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if n != len(files) {
		t.Errorf("first Sync() = %d, want %d", n, len(files))
	}

	n, err = svc.Library.Sync(files)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second Sync() = %d, want 0", n)
	}

	assets, err := svc.Library.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(assets) != len(files) {
		t.Errorf("assets = %d, want %d", len(assets), len(files))
	}
	for _, a := range assets {
		if a.Status != models.AssetStatusVerified || a.Pages != 3 || a.SizeKB != 12.5 {
			t.Errorf("asset = %+v", a)
		}
	}
}

func TestLibrary_SyncSkipsUnreadableFiles(t *testing.T) {
	ext := &fakeExtractor{}
	svc := newTestServices(t, Options{Extractor: ext})

	n, err := svc.Library.Sync([]string{"good.pdf", "corrupt.pdf", "also-good.pdf"})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Sync() = %d, want 2", n)
	}

	// The unreadable file is retried on the next sync, the indexed ones are not
	n, _ = svc.Library.Sync([]string{"good.pdf", "corrupt.pdf", "also-good.pdf"})
	if n != 0 {
		t.Errorf("second Sync() = %d, want 0", n)
	}
	corrupt := filepath.Join(svc.Library.Dir(), "corrupt.pdf")
	good := filepath.Join(svc.Library.Dir(), "good.pdf")
	if ext.calls[corrupt] != 2 || ext.calls[good] != 1 {
		t.Errorf("extract calls = %v", ext.calls)
	}
}

func TestLibrary_SyncDuplicateNamesInOneListing(t *testing.T) {
	svc := newTestServices(t, Options{})
	n, err := svc.Library.Sync([]string{"a.pdf", "a.pdf"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Sync() = %d, want 1", n)
	}
}

func TestLibrary_SyncDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "law_library")
	svc := newTestServices(t, Options{LibraryDir: dir})

	// Missing directory is created and yields nothing
	n, err := svc.Library.SyncDir()
	if err != nil || n != 0 {
		t.Fatalf("SyncDir(empty) = %d, %v", n, err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("library directory not created: %v", err)
	}

	for _, name := range []string{"Contract Act.PDF", "notes.txt", "ipc.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "folder.pdf"), 0755); err != nil {
		t.Fatal(err)
	}

	n, err = svc.Library.SyncDir()
	if err != nil {
		t.Fatalf("SyncDir() error = %v", err)
	}
	if n != 2 {
		t.Errorf("SyncDir() = %d, want 2", n)
	}
	if !hasKind(auditKinds(t, svc), models.EventLibrarySync) {
		t.Error("missing LIBRARY_SYNC audit event")
	}

	n, _ = svc.Library.SyncDir()
	if n != 0 {
		t.Errorf("second SyncDir() = %d, want 0", n)
	}
}

func TestLibrary_NoExtractor(t *testing.T) {
	svc := newTestServices(t, Options{})
	lib := NewLibrary(svc.Store, nil, t.TempDir(), svc.Audit, nil, nil)
	if _, err := lib.Sync([]string{"a.pdf"}); err == nil {
		t.Error("Sync() without extractor should fail")
	}
}
