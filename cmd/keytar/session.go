package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/guo/keytar/internal/audit"
	"github.com/guo/keytar/internal/config"
	"github.com/guo/keytar/internal/keychain"
	"github.com/guo/keytar/internal/secrets"
)

// session wires one command invocation: config file, .env loading, service
// resolution, credential store, secrets manager, and the audit log.
type session struct {
	cfg     *config.Config
	service string
	manager *secrets.Manager
	store   keychain.Store
	audit   *audit.Logger
	actor   string
}

// newSession builds a session from flags, environment, and the config file.
// An unreachable credential store is not fatal: reads degrade to the
// environment tier and writes fail with a clear error.
func newSession(actor string) (*session, error) {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if !flagNoEnvFile {
		envFile := flagEnvFile
		if envFile == "" {
			envFile = cfg.EnvFile
		}
		if err := config.LoadEnv(envFile); err != nil {
			return nil, err
		}
	}

	service := flagService
	if service == "" {
		service = os.Getenv("KEYTAR_SERVICE")
	}
	if service == "" {
		service = cfg.Service
	}
	if service == "" {
		return nil, errors.New("no service name: pass --service, set KEYTAR_SERVICE, or add 'service:' to " + config.DefaultPath())
	}

	saltAccount := flagSaltAccount
	if saltAccount == "" {
		saltAccount = cfg.SaltAccount
	}

	store, err := keychain.Open()
	if err != nil {
		slog.Warn("credential store unavailable, resolving from environment only", "error", err)
		store = nil
	}

	manager, err := secrets.New(secrets.Config{
		Service:     service,
		SaltAccount: saltAccount,
		Store:       store,
	})
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		service: service,
		manager: manager,
		store:   store,
		actor:   actor,
	}
	s.audit = openAuditLog(cfg)
	return s, nil
}

// openAuditLog creates the audit logger, or nil when auditing is disabled
// or the log cannot be opened. Secret operations proceed either way.
func openAuditLog(cfg *config.Config) *audit.Logger {
	if cfg.NoAudit {
		return nil
	}
	path := cfg.AuditLog
	if path == "" {
		home, err := keytarHome()
		if err != nil {
			slog.Warn("audit log disabled", "error", err)
			return nil
		}
		if err := os.MkdirAll(home, 0700); err != nil {
			slog.Warn("audit log disabled", "error", err)
			return nil
		}
		path = filepath.Join(home, "audit.log")
	}
	logger, err := audit.NewLogger(path)
	if err != nil {
		slog.Warn("audit log disabled", "error", err)
		return nil
	}
	return logger
}

func (s *session) close() {
	s.audit.Close()
}

// logAudit records a secret operation.
// Audit logging is best-effort — a failure to log should not block the operation.
func (s *session) logAudit(action audit.Action, name string, opErr error) {
	entry := audit.Entry{
		Action:  action,
		Service: s.service,
		Name:    name,
		Actor:   s.actor,
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}
	if err := s.audit.Log(entry); err != nil {
		slog.Warn("audit write failed", "error", err)
	}
}
