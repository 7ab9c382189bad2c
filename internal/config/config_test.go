// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing, .env loading and validation
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var allKeys = []string{
	"CHAMBERS_DB_PATH", "CHAMBERS_LIBRARY_DIR", "CHAMBERS_LOG_MODE", "CHAMBERS_SYNC_SCHEDULE",
	"CHAMBERS_METRICS_ADDR", "CHAMBERS_BCRYPT_COST", "CHAMBERS_PERSONA", "CHAMBERS_LANGUAGE",
	"OPENAI_API_KEY", "CHAMBERS_OPENAI_MODEL", "OPENAI_TIMEOUT", "OPENAI_MAX_RETRIES",
	"OPENAI_RETRY_DELAY", "SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM",
	"CHARM_HOST", "CHARM_DB", "CHARM_AUTO_SYNC",
}

// clearEnv unsets every key Load reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty (use XDG default)", cfg.DBPath)
	}
	if cfg.LibraryDir != "law_library" {
		t.Errorf("LibraryDir = %s, want law_library", cfg.LibraryDir)
	}
	if cfg.SyncSchedule != "*/15 * * * *" {
		t.Errorf("SyncSchedule = %s, want */15 * * * *", cfg.SyncSchedule)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.Persona != "Senior High Court Advocate" {
		t.Errorf("Persona = %s, want Senior High Court Advocate", cfg.Persona)
	}
	if cfg.Language != "English" {
		t.Errorf("Language = %s, want English", cfg.Language)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.SMTPHost != "smtp.gmail.com" || cfg.SMTPPort != 587 {
		t.Errorf("SMTP = %s:%d, want smtp.gmail.com:587", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.CharmHost != "cloud.charm.sh" {
		t.Errorf("CharmHost = %s, want cloud.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "chambers" {
		t.Errorf("CharmDBName = %s, want chambers", cfg.CharmDBName)
	}
	if !cfg.AutoSync {
		t.Error("AutoSync = false, want true")
	}
	if cfg.SMTPConfigured() {
		t.Error("SMTPConfigured() = true without credentials")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAMBERS_DB_PATH", "/tmp/c.db")
	t.Setenv("CHAMBERS_PERSONA", "Corporate Counsel")
	t.Setenv("CHAMBERS_LANGUAGE", "Hindi")
	t.Setenv("CHAMBERS_SYNC_SCHEDULE", "@hourly")
	t.Setenv("OPENAI_MAX_RETRIES", "5")
	t.Setenv("OPENAI_TIMEOUT", "1m")
	t.Setenv("SMTP_USER", "clerk@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("CHARM_AUTO_SYNC", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DBPath != "/tmp/c.db" {
		t.Errorf("DBPath = %s, want /tmp/c.db", cfg.DBPath)
	}
	if cfg.Persona != "Corporate Counsel" || cfg.Language != "Hindi" {
		t.Errorf("Persona/Language = %s/%s", cfg.Persona, cfg.Language)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Timeout)
	}
	if cfg.SMTPFrom != "clerk@example.com" {
		t.Errorf("SMTPFrom = %s, want fallback to SMTP_USER", cfg.SMTPFrom)
	}
	if !cfg.SMTPConfigured() {
		t.Error("SMTPConfigured() = false with credentials")
	}
	if cfg.AutoSync {
		t.Error("AutoSync = true, want false")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	if err := os.WriteFile(filepath.Join(".", ".env"), []byte("CHAMBERS_LANGUAGE=Tamil\nCHAMBERS_LIBRARY_DIR=docs\n"), 0600); err != nil {
		t.Fatal(err)
	}
	// An explicitly set variable wins over .env
	t.Setenv("CHAMBERS_LIBRARY_DIR", "explicit")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Language != "Tamil" {
		t.Errorf("Language = %s, want Tamil from .env", cfg.Language)
	}
	if cfg.LibraryDir != "explicit" {
		t.Errorf("LibraryDir = %s, want explicit", cfg.LibraryDir)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"retries too high", "OPENAI_MAX_RETRIES", "20"},
		{"negative retries", "OPENAI_MAX_RETRIES", "-1"},
		{"bcrypt cost too low", "CHAMBERS_BCRYPT_COST", "2"},
		{"bad cron", "CHAMBERS_SYNC_SCHEDULE", "every tuesday"},
		{"persona too long", "CHAMBERS_PERSONA", strings.Repeat("x", 201)},
		{"bad smtp port", "SMTP_PORT", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s should fail", tt.key, tt.val)
			}
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "notanumber")
	if got := getEnvInt("TEST_INT", 42); got != 42 {
		t.Errorf("getEnvInt() = %d, want fallback 42", got)
	}
	t.Setenv("TEST_BOOL", "1")
	if !getEnvBool("TEST_BOOL", false) {
		t.Error("getEnvBool(\"1\") = false")
	}
	t.Setenv("TEST_DUR", "garbage")
	if got := getEnvDuration("TEST_DUR", time.Second); got != time.Second {
		t.Errorf("getEnvDuration() = %v, want fallback 1s", got)
	}
}
