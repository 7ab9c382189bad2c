// ABOUTME: Centralized configuration for the chambers CLI and server
// ABOUTME: Loads from environment variables (and an optional .env file) with validation and defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"github.com/joho/godotenv"
)

// Config holds all configuration for chambers
type Config struct {
	// Storage settings
	DBPath     string
	LibraryDir string

	// Runtime settings
	LogMode      string
	SyncSchedule string
	MetricsAddr  string
	BcryptCost   int

	// Advisor settings
	Persona  string
	Language string

	// OpenAI settings
	OpenAIKey  string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// SMTP settings for transcript briefs
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Charm settings for snapshot backups
	CharmHost   string
	CharmDBName string
	AutoSync    bool
}

// Load reads configuration from a .env file in the working directory (if any)
// and then from environment variables. Variables already set win over .env.
func Load() (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := &Config{
		DBPath:       os.Getenv("CHAMBERS_DB_PATH"),
		LibraryDir:   getEnv("CHAMBERS_LIBRARY_DIR", "law_library"),
		LogMode:      getEnv("CHAMBERS_LOG_MODE", "dev"),
		SyncSchedule: getEnv("CHAMBERS_SYNC_SCHEDULE", "*/15 * * * *"),
		MetricsAddr:  getEnv("CHAMBERS_METRICS_ADDR", ":9464"),
		BcryptCost:   getEnvInt("CHAMBERS_BCRYPT_COST", 10),
		Persona:      getEnv("CHAMBERS_PERSONA", "Senior High Court Advocate"),
		Language:     getEnv("CHAMBERS_LANGUAGE", "English"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		ChatModel:    getEnv("CHAMBERS_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:      getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:   getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:   getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		CharmHost:    getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:  getEnv("CHARM_DB", "chambers"),
		AutoSync:     getEnvBool("CHARM_AUTO_SYNC", true),
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}

	return cfg, cfg.Validate()
}

// LoadDotEnv loads the given files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("CHAMBERS_BCRYPT_COST must be 4-31, got %d", c.BcryptCost)
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT must be 1-65535, got %d", c.SMTPPort)
	}
	if strings.TrimSpace(c.LibraryDir) == "" {
		return errors.New("CHAMBERS_LIBRARY_DIR cannot be empty")
	}
	if !gronx.New().IsValid(c.SyncSchedule) {
		return fmt.Errorf("CHAMBERS_SYNC_SCHEDULE is not a valid cron expression: %q", c.SyncSchedule)
	}
	if len(c.Persona) > 200 {
		return fmt.Errorf("CHAMBERS_PERSONA must be at most 200 characters, got %d", len(c.Persona))
	}
	return nil
}

// SMTPConfigured reports whether briefs can be mailed
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
