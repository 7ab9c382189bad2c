// ABOUTME: Shared fakes and fixtures for core tests
// ABOUTME: Plain hasher, scripted responder and counting extractor
package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/harper/chambers/internal/models"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// plainHasher keeps tests fast; it is not a real hash
type plainHasher struct{}

func (plainHasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret cannot be empty")
	}
	return "plain:" + secret, nil
}

func (plainHasher) Compare(hash, secret string) bool {
	return secret != "" && hash == "plain:"+secret
}

type fakeResponder struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeResponder) Respond(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeResponder) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// fakeExtractor fails for any path containing "corrupt"
type fakeExtractor struct {
	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeExtractor) Extract(path string) (models.AssetMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[path]++
	if strings.Contains(path, "corrupt") {
		return models.AssetMeta{}, errors.New("malformed pdf")
	}
	return models.AssetMeta{SizeKB: 12.5, Pages: 3}, nil
}

func newTestServices(t *testing.T, opts Options) *Services {
	t.Helper()
	store, err := sqlite.NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if opts.Hasher == nil {
		opts.Hasher = plainHasher{}
	}
	if opts.Extractor == nil {
		opts.Extractor = &fakeExtractor{}
	}
	if opts.LibraryDir == "" {
		opts.LibraryDir = t.TempDir()
	}
	return NewServices(store, opts)
}

func mustRegister(t *testing.T, svc *Services, key string) int64 {
	t.Helper()
	outcome, err := svc.Registry.Register(key, "Test "+key, "pw")
	if err != nil || outcome != Created {
		t.Fatalf("Register(%s) = %v, %v; want created", key, outcome, err)
	}
	chambers, err := svc.Chambers.List(key, false)
	if err != nil || len(chambers) == 0 {
		t.Fatalf("List(%s) = %v, %v", key, chambers, err)
	}
	return chambers[0].ID
}

func transcript(t *testing.T, l *Ledger, chamberID int64) []string {
	t.Helper()
	msgs, err := l.ReadAll(chamberID)
	if err != nil {
		t.Fatalf("ReadAll(%d) error = %v", chamberID, err)
	}
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.String()
	}
	return out
}

func auditKinds(t *testing.T, svc *Services) []models.EventKind {
	t.Helper()
	events, err := svc.Audit.Recent(100)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	kinds := make([]models.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}

func hasKind(kinds []models.EventKind, want models.EventKind) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
