package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `service: myapp
salt_account: namespace-token
env_file: /tmp/project/.env
audit_log: /tmp/keytar-audit.log
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Service != "myapp" {
		t.Errorf("Service = %q, want %q", cfg.Service, "myapp")
	}
	if cfg.SaltAccount != "namespace-token" {
		t.Errorf("SaltAccount = %q, want %q", cfg.SaltAccount, "namespace-token")
	}
	if cfg.EnvFile != "/tmp/project/.env" {
		t.Errorf("EnvFile = %q, want %q", cfg.EnvFile, "/tmp/project/.env")
	}
	if cfg.AuditLog != "/tmp/keytar-audit.log" {
		t.Errorf("AuditLog = %q, want %q", cfg.AuditLog, "/tmp/keytar-audit.log")
	}
	if cfg.NoAudit {
		t.Error("NoAudit = true, want false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Service != "" {
		t.Errorf("Service = %q, want empty", cfg.Service)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Service != "" {
		t.Errorf("Service = %q, want empty", cfg.Service)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `service: myapp
no_audit: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Service != "myapp" {
		t.Errorf("Service = %q, want %q", cfg.Service, "myapp")
	}
	if cfg.SaltAccount != "" {
		t.Errorf("SaltAccount = %q, want empty", cfg.SaltAccount)
	}
	if !cfg.NoAudit {
		t.Error("NoAudit = false, want true")
	}
}

func TestLoadCommentsOnly(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `# service: myapp
# salt_account: salt
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Service != "" {
		t.Errorf("Service = %q, want empty", cfg.Service)
	}
}

func TestLoadEnvExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")

	if err := os.WriteFile(path, []byte("KEYTAR_TEST_EXPLICIT=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KEYTAR_TEST_EXPLICIT", "")
	os.Unsetenv("KEYTAR_TEST_EXPLICIT")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("KEYTAR_TEST_EXPLICIT"); got != "from-file" {
		t.Errorf("KEYTAR_TEST_EXPLICIT = %q, want %q", got, "from-file")
	}
}

func TestLoadEnvExplicitFileMissing(t *testing.T) {
	if err := LoadEnv("/nonexistent/.env"); err == nil {
		t.Error("expected error for missing explicit env file")
	}
}

func TestLoadEnvNeverOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	if err := os.WriteFile(path, []byte("KEYTAR_TEST_OVERRIDE=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KEYTAR_TEST_OVERRIDE", "from-process")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("KEYTAR_TEST_OVERRIDE"); got != "from-process" {
		t.Errorf("KEYTAR_TEST_OVERRIDE = %q, want process value preserved", got)
	}
}

func TestLoadEnvWalksUp(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("KEYTAR_TEST_WALKUP=found\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KEYTAR_TEST_WALKUP", "")
	os.Unsetenv("KEYTAR_TEST_WALKUP")

	t.Chdir(nested)

	if err := LoadEnv(""); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("KEYTAR_TEST_WALKUP"); got != "found" {
		t.Errorf("KEYTAR_TEST_WALKUP = %q, want %q", got, "found")
	}
}
