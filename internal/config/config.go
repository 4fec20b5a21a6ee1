// Package config provides persistent CLI configuration and .env loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds persistent CLI configuration loaded from ~/.keytar/config.yaml.
type Config struct {
	// Service is the default base service name, used when --service and
	// KEYTAR_SERVICE are both unset.
	Service string `yaml:"service"`

	// SaltAccount overrides the store account the salt is kept under.
	SaltAccount string `yaml:"salt_account"`

	// EnvFile is an explicit .env file to load before resolving secrets.
	// When empty, the directory tree is searched upward for the nearest .env.
	EnvFile string `yaml:"env_file"`

	// AuditLog overrides the audit log path (default ~/.keytar/audit.log).
	AuditLog string `yaml:"audit_log"`

	// NoAudit disables audit logging entirely.
	NoAudit bool `yaml:"no_audit"`
}

// DefaultPath returns the default config file path: ~/.keytar/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".keytar", "config.yaml")
}

// Load reads a YAML config file from path. If the file does not exist,
// it returns an empty Config and no error. An empty or all-comment file
// also returns an empty Config with no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads environment variables from a .env file. An explicit path
// is loaded directly and a failure to read it is reported; with an empty
// path the directory tree is searched upward from the working directory
// and the nearest .env is loaded best-effort. Variables already set in
// the process environment are never overridden, so the environment stays
// authoritative.
func LoadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file %s: %w", path, err)
		}
		return nil
	}
	loadNearestDotEnv()
	return nil
}

// loadNearestDotEnv searches for a .env file up the directory tree and
// loads the first one found.
func loadNearestDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
