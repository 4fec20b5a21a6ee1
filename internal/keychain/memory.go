package keychain

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory implementation of Store for testing.
type MemoryStore struct {
	mu       sync.RWMutex
	services map[string]map[string]string
}

// NewMemoryStore creates a new in-memory secret store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{services: make(map[string]map[string]string)}
}

func (s *MemoryStore) Set(service, account, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, ok := s.services[service]
	if !ok {
		accounts = make(map[string]string)
		s.services[service] = accounts
	}
	accounts[account] = value
	return nil
}

func (s *MemoryStore) Get(service, account string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.services[service][account]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, account)
	}
	return val, nil
}

func (s *MemoryStore) Delete(service, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[service][account]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, account)
	}
	delete(s.services[service], account)
	return nil
}

// Accounts returns the sorted account names stored under a service.
func (s *MemoryStore) Accounts(service string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]string, 0, len(s.services[service]))
	for name := range s.services[service] {
		accounts = append(accounts, name)
	}
	sort.Strings(accounts)
	return accounts, nil
}
