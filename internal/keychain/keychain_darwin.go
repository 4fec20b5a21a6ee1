//go:build darwin

package keychain

import (
	"errors"
	"fmt"

	gokeychain "github.com/keybase/go-keychain"
)

// nativeStore provides CRUD operations for secrets in macOS Keychain.
type nativeStore struct{}

// Open returns a Store backed by the macOS Keychain, or an error wrapping
// ErrUnavailable when the Keychain cannot be reached.
func Open() (Store, error) {
	_, err := gokeychain.GetGenericPassword(probeService, probeAccount, "", "")
	if err != nil && !errors.Is(err, gokeychain.ErrorItemNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &nativeStore{}, nil
}

// Set stores a secret in the Keychain. Overwrites if it already exists.
func (s *nativeStore) Set(service, account, value string) error {
	// Try to delete existing item first (update = delete + add)
	_ = gokeychain.DeleteGenericPasswordItem(service, account)

	item := gokeychain.NewGenericPassword(
		service,
		account,
		fmt.Sprintf("keytar: %s", account),
		[]byte(value),
		"",
	)
	item.SetSynchronizable(gokeychain.SynchronizableNo)
	item.SetAccessible(gokeychain.AccessibleWhenUnlockedThisDeviceOnly)

	if err := gokeychain.AddItem(item); err != nil {
		return fmt.Errorf("keychain add %q: %w", account, err)
	}
	return nil
}

// Get retrieves a secret from the Keychain.
func (s *nativeStore) Get(service, account string) (string, error) {
	data, err := gokeychain.GetGenericPassword(service, account, "", "")
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, account)
		}
		return "", fmt.Errorf("keychain get %q: %w", account, err)
	}
	// GetGenericPassword reports a missing item as nil data with no error.
	// An empty stored value comes back as an empty non-nil slice.
	if data == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, account)
	}
	return string(data), nil
}

// Delete removes a secret from the Keychain.
func (s *nativeStore) Delete(service, account string) error {
	err := gokeychain.DeleteGenericPasswordItem(service, account)
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, account)
		}
		return fmt.Errorf("keychain delete %q: %w", account, err)
	}
	return nil
}

// Accounts returns all account names stored under a service.
func (s *nativeStore) Accounts(service string) ([]string, error) {
	accounts, err := gokeychain.GetGenericPasswordAccounts(service)
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("keychain list: %w", err)
	}
	return accounts, nil
}
