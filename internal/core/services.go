// ABOUTME: Services wires the core components over one store
// ABOUTME: Used by the CLI and the MCP server so both see the same behavior
package core

import (
	"github.com/harper/chambers/internal/credentials"
	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/metrics"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// Options configures NewServices. Hasher defaults to bcrypt at its default cost.
type Options struct {
	Hasher     credentials.Hasher
	Responder  Responder
	Extractor  Extractor
	LibraryDir string
	Advisor    Advisor
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
}

// Services is the full set of core components
type Services struct {
	Store        *sqlite.Storage
	Audit        *AuditLog
	Registry     *Registry
	Chambers     *ChamberRegistry
	Ledger       *Ledger
	Guard        *Guard
	Consultation *Consultation
	Library      *Library
}

// NewServices builds every component over store
func NewServices(store *sqlite.Storage, opts Options) *Services {
	if opts.Hasher == nil {
		opts.Hasher = credentials.NewBcrypt(0)
	}
	log := logger.OrNop(opts.Logger)

	audit := NewAuditLog(store.Audit(), log, opts.Metrics)
	ledger := NewLedger(store, log, opts.Metrics)
	guard := NewGuard(ledger, log, opts.Metrics)

	return &Services{
		Store:        store,
		Audit:        audit,
		Registry:     NewRegistry(store, opts.Hasher, audit, log, opts.Metrics),
		Chambers:     NewChamberRegistry(store, audit, log),
		Ledger:       ledger,
		Guard:        guard,
		Consultation: NewConsultation(guard, ledger, opts.Responder, opts.Advisor, audit, log, opts.Metrics),
		Library:      NewLibrary(store, opts.Extractor, opts.LibraryDir, audit, log, opts.Metrics),
	}
}
