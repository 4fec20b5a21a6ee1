// Package secrets resolves application secrets from the process
// environment and the operating system credential store.
//
// Resolution order: an environment variable with a non-blank value wins
// outright; otherwise the credential store is consulted under the salted
// service scope. Store problems on the read path degrade to "absent" so
// that contexts without a usable store (CI, headless sessions) keep
// working from the environment alone.
//
// Scoping: each base service derives a namespace "{base}-{salt}" under
// which its secrets are physically stored. The salt is itself a store
// entry under the unsalted base service name, so tools sharing one
// credential store get distinct namespaces even when base names collide.
package secrets

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/guo/keytar/internal/keychain"
)

// ErrStoreUnavailable is returned by mutating operations when no usable
// credential store is present or the store call failed.
var ErrStoreUnavailable = errors.New("credential store unavailable")

// ErrSaltMissing is returned when a scoped operation runs before any salt
// has been initialized for the service.
var ErrSaltMissing = errors.New("salt not initialized")

// DefaultSaltAccount is the store account a service's salt is kept under,
// addressed by the unsalted base service name.
const DefaultSaltAccount = "salt"

// LookupFunc resolves an environment variable, reporting whether it is set.
type LookupFunc func(name string) (string, bool)

// Config configures a Manager.
type Config struct {
	// Service is the base service name secrets are scoped under. Required.
	Service string

	// SaltAccount is the account the salt is stored under. Defaults to
	// DefaultSaltAccount.
	SaltAccount string

	// Store is the credential store handle. Nil means no usable store is
	// present: reads resolve from the environment alone and mutating
	// operations fail with ErrStoreUnavailable.
	Store keychain.Store

	// Lookup resolves environment variables. Defaults to os.LookupEnv.
	Lookup LookupFunc
}

// Manager resolves and manages secrets for one base service.
//
// A Manager holds no mutable state and takes no locks: the salt is re-read
// from the store on every operation, so a salt rotated by another process
// takes effect immediately. Concurrent salt initialization and writes
// across processes are not coordinated.
type Manager struct {
	service     string
	saltAccount string
	store       keychain.Store
	lookup      LookupFunc
	logger      *slog.Logger
}

// New validates cfg and returns a Manager.
func New(cfg Config) (*Manager, error) {
	if cfg.Service == "" {
		return nil, errors.New("secrets: service name required")
	}
	m := &Manager{
		service:     cfg.Service,
		saltAccount: cfg.SaltAccount,
		store:       cfg.Store,
		lookup:      cfg.Lookup,
	}
	if m.saltAccount == "" {
		m.saltAccount = DefaultSaltAccount
	}
	if m.lookup == nil {
		m.lookup = os.LookupEnv
	}
	m.logger = slog.With("component", "secrets", "service", cfg.Service)
	return m, nil
}

// Service returns the base service name.
func (m *Manager) Service() string {
	return m.service
}

// Get resolves a secret by name. A set, non-blank environment variable is
// returned without consulting the store, verbatim and untrimmed. Store
// problems on this path (no store, no salt, failed lookup) degrade to
// absent rather than erroring.
func (m *Manager) Get(name string) (string, bool) {
	if val, ok := m.fromEnv(name); ok {
		return val, true
	}
	if m.store == nil {
		return "", false
	}
	scope, err := m.Scope()
	if err != nil {
		m.logger.Debug("store lookup skipped", "name", name, "reason", err)
		return "", false
	}
	val, err := m.store.Get(scope, name)
	if err != nil {
		if !errors.Is(err, keychain.ErrNotFound) {
			m.logger.Debug("store lookup failed", "name", name, "error", err)
		}
		return "", false
	}
	return val, true
}

// Set writes a secret under the salted scope, overwriting any existing
// value. Empty values are allowed and round-trip as empty.
func (m *Manager) Set(name, value string) error {
	scope, err := m.Scope()
	if err != nil {
		return err
	}
	if err := m.store.Set(scope, name, value); err != nil {
		return fmt.Errorf("%w: storing %s: %v", ErrStoreUnavailable, name, err)
	}
	return nil
}

// Delete removes a secret, reporting whether an entry was actually
// removed. Deleting a name that does not exist is (false, nil), not an
// error.
func (m *Manager) Delete(name string) (bool, error) {
	scope, err := m.Scope()
	if err != nil {
		return false, err
	}
	if err := m.store.Delete(scope, name); err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: deleting %s: %v", ErrStoreUnavailable, name, err)
	}
	return true, nil
}

// MoveFromEnv copies the named environment variable into the store under
// the salted scope. An unset or blank variable is skipped: the return is
// (false, nil) and nothing is written. The process environment itself is
// left untouched — on the next Get the environment still wins.
func (m *Manager) MoveFromEnv(name string) (bool, error) {
	val, ok := m.fromEnv(name)
	if !ok {
		return false, nil
	}
	if err := m.Set(name, val); err != nil {
		return false, err
	}
	return true, nil
}

// fromEnv resolves name through the environment provider. A variable that
// is unset, empty, or whitespace-only counts as absent.
func (m *Manager) fromEnv(name string) (string, bool) {
	val, ok := m.lookup(name)
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return val, true
}
