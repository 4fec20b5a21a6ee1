package secrets

import (
	"errors"
	"strings"
	"testing"

	"github.com/guo/keytar/internal/keychain"
)

func TestInitSaltGeneratesWhenAbsent(t *testing.T) {
	store := keychain.NewMemoryStore()
	m := testManager(t, store, testEnv{})

	salt, err := m.InitSalt("")
	if err != nil {
		t.Fatalf("InitSalt: %v", err)
	}
	if len(salt) != saltLength {
		t.Errorf("expected %d-character salt, got %q", saltLength, salt)
	}
	for _, c := range salt {
		if !strings.ContainsRune(saltAlphabet, c) {
			t.Errorf("salt character %q outside alphabet", c)
		}
	}

	stored, err := store.Get("testsvc", DefaultSaltAccount)
	if err != nil {
		t.Fatalf("store Get: %v", err)
	}
	if stored != salt {
		t.Errorf("persisted salt %q != returned salt %q", stored, salt)
	}

	scope, err := m.Scope()
	if err != nil {
		t.Fatalf("Scope: %v", err)
	}
	if scope != "testsvc-"+salt {
		t.Errorf("expected scope testsvc-%s, got %q", salt, scope)
	}
}

func TestInitSaltUsesProvided(t *testing.T) {
	m := testManager(t, keychain.NewMemoryStore(), testEnv{})

	salt, err := m.InitSalt("pepper")
	if err != nil {
		t.Fatalf("InitSalt: %v", err)
	}
	if salt != "pepper" {
		t.Errorf("expected 'pepper', got %q", salt)
	}
}

func TestInitSaltIdempotent(t *testing.T) {
	store := keychain.NewMemoryStore()
	m := testManager(t, store, testEnv{})

	first, err := m.InitSalt("pepper")
	if err != nil {
		t.Fatalf("first InitSalt: %v", err)
	}

	again, err := m.InitSalt("")
	if err != nil {
		t.Fatalf("second InitSalt: %v", err)
	}
	if again != first {
		t.Errorf("expected existing salt %q, got %q", first, again)
	}

	// A different provided salt never replaces an existing one.
	conflicting, err := m.InitSalt("different")
	if err != nil {
		t.Fatalf("third InitSalt: %v", err)
	}
	if conflicting != first {
		t.Errorf("existing salt replaced: got %q", conflicting)
	}

	if stored, _ := store.Get("testsvc", DefaultSaltAccount); stored != first {
		t.Errorf("persisted salt changed to %q", stored)
	}
}

func TestInitSaltWithoutStore(t *testing.T) {
	m := testManager(t, nil, testEnv{})

	_, err := m.InitSalt("pepper")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestInitSaltReplacesEmptySalt(t *testing.T) {
	store := keychain.NewMemoryStore()
	store.Set("testsvc", DefaultSaltAccount, "")
	m := testManager(t, store, testEnv{})

	salt, err := m.InitSalt("fresh")
	if err != nil {
		t.Fatalf("InitSalt: %v", err)
	}
	if salt != "fresh" {
		t.Errorf("expected empty salt to be replaced, got %q", salt)
	}
}

func TestInitSaltStoreFailure(t *testing.T) {
	m := testManager(t, &faultyStore{err: errors.New("keychain locked")}, testEnv{})

	_, err := m.InitSalt("pepper")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestSaltMissing(t *testing.T) {
	m := testManager(t, keychain.NewMemoryStore(), testEnv{})

	_, err := m.Salt()
	if !errors.Is(err, ErrSaltMissing) {
		t.Errorf("expected ErrSaltMissing, got %v", err)
	}
}

func TestSaltCustomAccount(t *testing.T) {
	store := keychain.NewMemoryStore()
	m, err := New(Config{
		Service:     "testsvc",
		SaltAccount: "namespace-token",
		Store:       store,
		Lookup:      testEnv{}.lookup,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := m.InitSalt("pepper"); err != nil {
		t.Fatalf("InitSalt: %v", err)
	}

	if val, err := store.Get("testsvc", "namespace-token"); err != nil || val != "pepper" {
		t.Errorf("custom account entry: %q err=%v", val, err)
	}
	if _, err := store.Get("testsvc", DefaultSaltAccount); !errors.Is(err, keychain.ErrNotFound) {
		t.Errorf("default account should be empty, got %v", err)
	}
}

func TestScopeRequiresSalt(t *testing.T) {
	m := testManager(t, keychain.NewMemoryStore(), testEnv{})

	_, err := m.Scope()
	if !errors.Is(err, ErrSaltMissing) {
		t.Errorf("expected ErrSaltMissing, got %v", err)
	}
}

func TestGenerateSaltCharset(t *testing.T) {
	for i := 0; i < 20; i++ {
		salt, err := generateSalt()
		if err != nil {
			t.Fatalf("generateSalt: %v", err)
		}
		if len(salt) != saltLength {
			t.Fatalf("expected length %d, got %q", saltLength, salt)
		}
		for _, c := range salt {
			if !strings.ContainsRune(saltAlphabet, c) {
				t.Errorf("character %q outside alphabet in %q", c, salt)
			}
		}
	}
}
