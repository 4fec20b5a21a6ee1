package main

import (
	"strings"
	"testing"
)

func TestRunRotationCommand(t *testing.T) {
	out, err := runRotationCommand("echo new-secret-value")
	if err != nil {
		t.Fatalf("runRotationCommand: %v", err)
	}
	if out != "new-secret-value" {
		t.Errorf("expected 'new-secret-value', got %q", out)
	}
}

func TestRunRotationCommandTrimsTrailingNewlines(t *testing.T) {
	out, err := runRotationCommand("printf 'value\\n\\n'")
	if err != nil {
		t.Fatalf("runRotationCommand: %v", err)
	}
	if out != "value" {
		t.Errorf("expected 'value', got %q", out)
	}
}

func TestRunRotationCommandFailure(t *testing.T) {
	_, err := runRotationCommand("echo oops >&2; exit 3")
	if err == nil {
		t.Fatal("expected error for failing command")
	}
	if !strings.Contains(err.Error(), "exit code 3") {
		t.Errorf("expected exit code in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "oops") {
		t.Errorf("expected captured stderr in error, got %v", err)
	}
}
