// ABOUTME: Tests for audit event storage
// ABOUTME: Verifies nullable account keys and newest-first reads

package sqlite

import (
	"testing"
	"time"

	"github.com/harper/chambers/internal/models"
)

func TestAuditStore_InsertAndRecent(t *testing.T) {
	s := newTestStorage(t)

	events := []models.AuditEvent{
		{AccountKey: "a@x.com", Kind: models.EventRegistration, Description: "registered"},
		{Kind: models.EventLibrarySync, Description: "2 new assets"},
		{AccountKey: "a@x.com", Kind: models.EventLogin, Description: "verified"},
	}
	for i := range events {
		events[i].CreatedAt = time.Now()
		if err := s.Audit().Insert(&events[i]); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	recent, err := s.Audit().Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].Kind != models.EventLogin {
		t.Errorf("recent[0].Kind = %q, want LOGIN", recent[0].Kind)
	}
	if recent[1].AccountKey != "" {
		t.Errorf("recent[1].AccountKey = %q, want empty", recent[1].AccountKey)
	}

	var nulls int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM audit_events WHERE account_key IS NULL").Scan(&nulls); err != nil {
		t.Fatalf("count error = %v", err)
	}
	if nulls != 1 {
		t.Errorf("NULL account keys = %d, want 1", nulls)
	}
}
