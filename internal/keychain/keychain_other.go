//go:build !darwin

package keychain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// systemStore stores secrets through the platform credential service:
// Secret Service (GNOME Keyring, KWallet) on Linux, Credential Manager
// on Windows.
type systemStore struct{}

// Open returns a Store backed by the platform credential service, or an
// error wrapping ErrUnavailable when no usable service is present.
func Open() (Store, error) {
	_, err := keyring.Get(probeService, probeAccount)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &systemStore{}, nil
}

func (s *systemStore) Set(service, account, value string) error {
	if err := keyring.Set(service, account, value); err != nil {
		if errors.Is(err, keyring.ErrUnsupportedPlatform) || isUnavailableError(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("keyring set %q: %w", account, err)
	}
	return nil
}

func (s *systemStore) Get(service, account string) (string, error) {
	value, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, account)
		}
		if errors.Is(err, keyring.ErrUnsupportedPlatform) || isUnavailableError(err) {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return "", fmt.Errorf("keyring get %q: %w", account, err)
	}
	return value, nil
}

func (s *systemStore) Delete(service, account string) error {
	if err := keyring.Delete(service, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, account)
		}
		if errors.Is(err, keyring.ErrUnsupportedPlatform) || isUnavailableError(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("keyring delete %q: %w", account, err)
	}
	return nil
}

// isUnavailableError checks if an error indicates the credential service is
// locked or inaccessible rather than an entry being missing.
func isUnavailableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	indicators := []string{
		"locked",
		"cannot access",
		"permission denied",
		"failed to unlock",
		"user interaction required",
		"secret service",
		"dbus",
		"user canceled",
	}

	for _, indicator := range indicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}
