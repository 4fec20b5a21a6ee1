package main

import (
	"os"
	"path/filepath"
)

// keytarHome returns the path to the keytar home directory (~/.keytar).
func keytarHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".keytar"), nil
}
