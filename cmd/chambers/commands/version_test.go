// ABOUTME: Tests for the version command
// ABOUTME: Checks the build stamp, schema version and JSON rendering

package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/harper/chambers/internal/storage/sqlite"
)

func runVersion(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "version"))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version error = %v", err)
	}
	return out.String()
}

func TestVersionCmd_Text(t *testing.T) {
	original := versionInfo
	defer func() { versionInfo = original }()
	SetVersion("1.2.3", "abc123", "2026-01-31")

	out := runVersion(t)
	for _, want := range []string{"chambers 1.2.3", "abc123", "2026-01-31", "schema v1", `"Chambers"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got %q", want, out)
		}
	}
}

func TestVersionCmd_JSON(t *testing.T) {
	original := versionInfo
	defer func() { versionInfo = original }()
	SetVersion("2.0.0", "def456", "2026-10-19")

	var got buildReport
	if err := json.Unmarshal([]byte(runVersion(t, "--format", "json")), &got); err != nil {
		t.Fatalf("version json: %v", err)
	}
	if got.Version != "2.0.0" || got.Commit != "def456" {
		t.Errorf("build = %+v", got)
	}
	if got.Schema != sqlite.SchemaVersion {
		t.Errorf("schema_version = %d, want %d", got.Schema, sqlite.SchemaVersion)
	}
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version", "extra"})
	if err := cmd.Execute(); err == nil {
		t.Error("version should reject arguments")
	}
}
