package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "srp6a"

// UserConfigDir returns the OS-specific user configuration directory for srp6a.
// On Linux: ~/.config/srp6a
// On macOS: ~/Library/Application Support/srp6a
// On Windows: %APPDATA%\srp6a
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// EnsureDir creates dir and its parents with 0700 permissions.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
