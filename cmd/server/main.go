// ABOUTME: Main entry point for the chambers MCP server with stdio transport
// ABOUTME: Initializes config, storage and core services, then runs the daemon
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/chambers/internal/config"
	"github.com/harper/chambers/internal/core"
	"github.com/harper/chambers/internal/credentials"
	"github.com/harper/chambers/internal/daemon"
	"github.com/harper/chambers/internal/extract"
	"github.com/harper/chambers/internal/llm"
	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/metrics"
	"github.com/harper/chambers/internal/storage/sqlite"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("error closing storage", "error", err)
		}
	}()

	var responder core.Responder
	if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY not set; replies will be failure notices")
	} else {
		client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			ChatModel:  cfg.ChatModel,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			return fmt.Errorf("initializing OpenAI client: %w", err)
		}
		responder = client
	}

	m := metrics.New()
	svc := core.NewServices(store, core.Options{
		Hasher:     credentials.NewBcrypt(cfg.BcryptCost),
		Responder:  responder,
		Extractor:  extract.NewPDFExtractor(),
		LibraryDir: cfg.LibraryDir,
		Advisor:    core.Advisor{Persona: cfg.Persona, Language: cfg.Language},
		Logger:     log,
		Metrics:    m,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("chambers server starting", "version", version, "db", store.DB().Path())
	return daemon.Run(ctx, daemon.Options{
		Services:     svc,
		Metrics:      m,
		Logger:       log,
		Version:      version,
		MetricsAddr:  cfg.MetricsAddr,
		SyncSchedule: cfg.SyncSchedule,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
	})
}
