// ABOUTME: Builds the runtime (config, logger, store, core services) for a command
// ABOUTME: Also resolves the signed-in account and chamber references
package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/harper/chambers/internal/config"
	"github.com/harper/chambers/internal/core"
	"github.com/harper/chambers/internal/credentials"
	"github.com/harper/chambers/internal/extract"
	"github.com/harper/chambers/internal/llm"
	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/metrics"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// app is everything a command needs, opened once per invocation
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	store *sqlite.Storage
	svc   *core.Services
	m     *metrics.Metrics
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	var store *sqlite.Storage
	if path == "" {
		store, err = sqlite.NewStorage()
	} else {
		store, err = sqlite.NewStorageWithPath(path)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	m := metrics.New()
	svc := core.NewServices(store, core.Options{
		Hasher:     credentials.NewBcrypt(cfg.BcryptCost),
		Responder:  newResponder(cfg, log),
		Extractor:  extract.NewPDFExtractor(),
		LibraryDir: cfg.LibraryDir,
		Advisor:    core.Advisor{Persona: cfg.Persona, Language: cfg.Language},
		Logger:     log,
		Metrics:    m,
	})

	return &app{cfg: cfg, log: log, store: store, svc: svc, m: m}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
	a.log.Sync()
}

// newLogger logs to stderr; commands stay quiet unless --verbose
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	if !verbose {
		return logger.Nop(), nil
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return log, nil
}

// newResponder returns nil when no API key is configured; consultations then
// record a failure reply instead of advice
func newResponder(cfg *config.Config, log *logger.Logger) core.Responder {
	if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY not set; replies will be failure notices")
		return nil
	}
	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		log.Warn("failed to create OpenAI client", "error", err)
		return nil
	}
	return client
}

// currentAccount returns the account key from --account or CHAMBERS_ACCOUNT
func currentAccount() (string, error) {
	key := accountKey
	if key == "" {
		key = os.Getenv("CHAMBERS_ACCOUNT")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("no account given: use --account or set CHAMBERS_ACCOUNT")
	}
	return key, nil
}

func currentSecret() string {
	if secret != "" {
		return secret
	}
	return os.Getenv("CHAMBERS_SECRET")
}

// signIn verifies the current account and returns its key and display name
func (a *app) signIn() (string, string, error) {
	key, err := currentAccount()
	if err != nil {
		return "", "", err
	}
	name, ok, err := a.svc.Registry.Verify(key, currentSecret())
	if err != nil {
		return "", "", describe(err)
	}
	if !ok {
		return "", "", errors.New("invalid credentials")
	}
	return key, name, nil
}

// resolveChamber accepts a numeric id or a label. An empty reference picks
// the account's most recent chamber.
func (a *app) resolveChamber(key, ref string) (int64, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		chambers, err := a.svc.Chambers.List(key, false)
		if err != nil {
			return 0, "", describe(err)
		}
		if len(chambers) == 0 {
			return 0, "", errors.New("no open chambers: create one with 'chambers chamber new'")
		}
		return chambers[0].ID, chambers[0].Label, nil
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		c, err := a.svc.Chambers.Owned(key, id)
		if err != nil {
			return 0, "", fmt.Errorf("chamber %d: %w", id, describe(err))
		}
		return c.ID, c.Label, nil
	}

	id, err := a.svc.Chambers.Resolve(key, ref)
	if err != nil {
		return 0, "", fmt.Errorf("chamber %q: %w", ref, describe(err))
	}
	return id, ref, nil
}

// describe rewrites core errors into messages for the terminal
func describe(err error) error {
	switch {
	case errors.Is(err, core.ErrStoreUnavailable):
		return fmt.Errorf("store unavailable, try again: %w", err)
	case errors.Is(err, core.ErrNotFound):
		return errors.New("not found")
	default:
		return err
	}
}
