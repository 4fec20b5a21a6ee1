// Package audit provides append-only structured logging for secret operations.
//
// Every secret operation performed through the CLI (read, write, delete,
// convert, rotate, salt initialization) is recorded to an audit log at
// ~/.keytar/audit.log as newline-delimited JSON. Values are never logged;
// entries carry the base service name, not the salted scope.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Action describes what happened.
type Action string

const (
	ActionSecretRead    Action = "secret_read"
	ActionSecretWrite   Action = "secret_write"
	ActionSecretDelete  Action = "secret_delete"
	ActionSecretConvert Action = "secret_convert"
	ActionSecretRotate  Action = "secret_rotate"
	ActionSaltInit      Action = "salt_init"
)

// Entry is a single audit log record.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Action    Action    `json:"action"`
	Service   string    `json:"service"`           // base service name, never the salted scope
	Name      string    `json:"name,omitempty"`    // secret name
	Actor     string    `json:"actor,omitempty"`   // "cli", "menu"
	Command   string    `json:"command,omitempty"` // rotation command if applicable
	Error     string    `json:"error,omitempty"`
}

// Logger writes audit entries to an append-only file.
// A nil *Logger discards entries, so callers with auditing disabled can
// log unconditionally.
type Logger struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// NewLogger creates or opens an audit log file for appending.
func NewLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return &Logger{file: f, path: path}, nil
}

// Log writes an audit entry.
func (l *Logger) Log(entry Entry) error {
	if l == nil {
		return nil
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling audit entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}

// Close closes the audit log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.file.Close()
}
