// ABOUTME: Account registry: registration, verification and federated sign-in
// ABOUTME: Every new account is created together with its first chamber
package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/chambers/internal/credentials"
	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/metrics"
	"github.com/harper/chambers/internal/models"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// RegisterOutcome is the result of a registration attempt
type RegisterOutcome int

const (
	Created RegisterOutcome = iota
	Duplicate
	Invalid
)

func (o RegisterOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case Duplicate:
		return "duplicate"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Identity is an account identity asserted by an external provider
type Identity struct {
	Key         string
	DisplayName string
}

// Registry manages accounts
type Registry struct {
	store   *sqlite.Storage
	hasher  credentials.Hasher
	audit   *AuditLog
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRegistry creates a Registry
func NewRegistry(store *sqlite.Storage, hasher credentials.Hasher, audit *AuditLog, log *logger.Logger, m *metrics.Metrics) *Registry {
	return &Registry{
		store:   store,
		hasher:  hasher,
		audit:   audit,
		log:     logger.OrNop(log).With("component", "registry"),
		metrics: m,
		now:     time.Now,
	}
}

// Register creates an account keyed by key together with its default chamber.
// An existing key yields Duplicate and writes nothing.
func (r *Registry) Register(key, displayName, secret string) (RegisterOutcome, error) {
	key = strings.TrimSpace(key)
	if key == "" || secret == "" {
		r.metrics.Registration(Invalid.String())
		return Invalid, nil
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = key
	}

	exists, err := r.store.Accounts().Exists(key)
	if err != nil {
		return Invalid, storeErr("failed to check account", err)
	}
	if exists {
		r.metrics.Registration(Duplicate.String())
		return Duplicate, nil
	}

	hash, err := r.hasher.Hash(secret)
	if err != nil {
		return Invalid, fmt.Errorf("failed to hash secret: %w", err)
	}

	if err := r.create(key, displayName, hash, models.DefaultChamberLabel); err != nil {
		// Lost a race with a concurrent registration of the same key
		if errors.Is(err, sqlite.ErrConflict) {
			r.metrics.Registration(Duplicate.String())
			return Duplicate, nil
		}
		return Invalid, storeErr("failed to register account", err)
	}

	r.metrics.Registration(Created.String())
	r.audit.Record(key, models.EventRegistration, "New account provisioned")
	r.log.Info("account registered", "account", key)
	return Created, nil
}

// Verify checks a secret against the stored hash. ok is false for an unknown
// key, a wrong secret and a suspended account alike.
func (r *Registry) Verify(key, secret string) (string, bool, error) {
	key = strings.TrimSpace(key)
	account, err := r.store.Accounts().Get(key)
	if err != nil {
		return "", false, storeErr("failed to load account", err)
	}

	if account == nil || !account.IsActive() || !r.hasher.Compare(account.SecretHash, secret) {
		r.metrics.Login(false)
		if account != nil {
			r.audit.Record(key, models.EventLoginFailed, "Credential verification failed")
		}
		return "", false, nil
	}

	if err := r.store.Accounts().RecordLogin(key, r.now().UTC()); err != nil {
		return "", false, storeErr("failed to record login", err)
	}

	r.metrics.Login(true)
	r.audit.Record(key, models.EventLogin, "Credential sign-in")
	return account.DisplayName, true, nil
}

// SignInFederated signs in an identity vouched for by an external provider.
// The first sight of a key creates the account and a federated chamber.
func (r *Registry) SignInFederated(id Identity) (bool, error) {
	key := strings.TrimSpace(id.Key)
	if key == "" {
		return false, fmt.Errorf("federated identity has no key: %w", ErrInvalid)
	}

	account, err := r.store.Accounts().Get(key)
	if err != nil {
		return false, storeErr("failed to load account", err)
	}

	if account == nil {
		hash, err := credentials.Unverifiable(r.hasher)
		if err != nil {
			return false, fmt.Errorf("failed to hash secret: %w", err)
		}
		name := strings.TrimSpace(id.DisplayName)
		if name == "" {
			name = key
		}

		err = r.create(key, name, hash, models.FederatedChamberLabel)
		switch {
		case err == nil:
			r.metrics.Registration(Created.String())
			r.audit.Record(key, models.EventOAuthSignup, "Account provisioned through federated sign-in")
			r.log.Info("federated account registered", "account", key)
			return true, nil
		case errors.Is(err, sqlite.ErrConflict):
			// Created concurrently; fall through to an ordinary sign-in
		default:
			return false, storeErr("failed to register account", err)
		}
	} else if !account.IsActive() {
		return false, ErrSuspended
	}

	if err := r.store.Accounts().RecordLogin(key, r.now().UTC()); err != nil {
		return false, storeErr("failed to record login", err)
	}
	r.audit.Record(key, models.EventOAuthLogin, "Federated sign-in")
	return false, nil
}

// Get returns the account for key
func (r *Registry) Get(key string) (*models.Account, error) {
	account, err := r.store.Accounts().Get(strings.TrimSpace(key))
	if err != nil {
		return nil, storeErr("failed to load account", err)
	}
	if account == nil {
		return nil, ErrNotFound
	}
	return account, nil
}

// Suspend marks an account as suspended. Its data is kept.
func (r *Registry) Suspend(key string) error {
	return r.setStatus(key, models.AccountSuspended)
}

// Reinstate returns a suspended account to active status
func (r *Registry) Reinstate(key string) error {
	return r.setStatus(key, models.AccountActive)
}

// Stats returns the number of accounts and the total user queries recorded
func (r *Registry) Stats() (accounts, queries int, err error) {
	accounts, queries, err = r.store.Accounts().Stats()
	if err != nil {
		return 0, 0, storeErr("failed to read stats", err)
	}
	return accounts, queries, nil
}

func (r *Registry) setStatus(key string, status models.AccountStatus) error {
	if err := r.store.Accounts().SetStatus(strings.TrimSpace(key), status); err != nil {
		return storeErr("failed to update account status", err)
	}
	return nil
}

func (r *Registry) create(key, displayName, hash, chamberLabel string) error {
	now := r.now().UTC()
	account := &models.Account{
		Key:          key,
		DisplayName:  displayName,
		SecretHash:   hash,
		Tier:         models.DefaultTier,
		Status:       models.AccountActive,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	chamber := &models.Chamber{
		Label:     chamberLabel,
		Kind:      models.DefaultChamberKind,
		CreatedAt: now,
	}
	return r.store.Accounts().CreateWithChamber(account, chamber)
}
