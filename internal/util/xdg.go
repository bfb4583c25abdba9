package util

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "uhpc"

// GetXDGDataDir returns the XDG data directory for uhpc.
// It respects XDG_DATA_HOME if set, otherwise falls back to ~/.local/share/uhpc
func GetXDGDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "share", appName), nil
}

// DefaultDatabaseURL is a local libsql file in the XDG data directory.
// The directory is created if missing.
func DefaultDatabaseURL() (string, error) {
	dir, err := GetXDGDataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return "file:" + filepath.Join(dir, "uhpc.db"), nil
}
