package secrets

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/guo/keytar/internal/keychain"
)

const (
	// saltAlphabet is the character set for generated salts.
	saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// saltLength is the number of characters in a generated salt.
	saltLength = 8
)

// InitSalt ensures the service has a salt, creating one when absent.
//
// An existing salt always wins: it is returned unchanged even when a
// different salt is provided, so repeated initialization is safe and an
// already-scoped store is never silently re-namespaced. When no salt
// exists, the provided salt (if non-empty) or a newly generated one is
// persisted under the base service name and returned.
func (m *Manager) InitSalt(provided string) (string, error) {
	if m.store == nil {
		return "", ErrStoreUnavailable
	}

	existing, err := m.Salt()
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrSaltMissing) {
		return "", err
	}

	salt := provided
	if salt == "" {
		salt, err = generateSalt()
		if err != nil {
			return "", fmt.Errorf("generating salt: %w", err)
		}
	}
	if err := m.store.Set(m.service, m.saltAccount, salt); err != nil {
		return "", fmt.Errorf("%w: storing salt: %v", ErrStoreUnavailable, err)
	}
	m.logger.Debug("salt initialized")
	return salt, nil
}

// Salt returns the service's current salt. The salt lives in the store
// under the unsalted base service name at (service, saltAccount) and is
// read fresh on every call. An empty stored salt counts as missing.
func (m *Manager) Salt() (string, error) {
	if m.store == nil {
		return "", ErrStoreUnavailable
	}
	salt, err := m.store.Get(m.service, m.saltAccount)
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return "", fmt.Errorf("%w: service %s", ErrSaltMissing, m.service)
		}
		return "", fmt.Errorf("%w: reading salt: %v", ErrStoreUnavailable, err)
	}
	if salt == "" {
		return "", fmt.Errorf("%w: service %s", ErrSaltMissing, m.service)
	}
	return salt, nil
}

// Scope returns the salted service namespace "{service}-{salt}" that
// secret entries are stored under.
func (m *Manager) Scope() (string, error) {
	salt, err := m.Salt()
	if err != nil {
		return "", err
	}
	return m.service + "-" + salt, nil
}

// generateSalt returns a random token drawn from saltAlphabet.
func generateSalt() (string, error) {
	size := big.NewInt(int64(len(saltAlphabet)))
	out := make([]byte, saltLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		out[i] = saltAlphabet[n.Int64()]
	}
	return string(out), nil
}
