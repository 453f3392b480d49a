// Package xdg locates the per-user folders aurora reads and writes.
package xdg

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "aurora"

// ConfigDir returns the configuration directory for aurora.
// On Linux: $XDG_CONFIG_HOME/aurora or ~/.config/aurora
// On macOS: ~/Library/Application Support/aurora (fallback to XDG if set)
//
// Note: This function creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	var base string

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		base = configHome
	} else if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, "Library", "Application Support")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// PresetsFile returns the path of the user's preset overrides. The file
// itself may not exist.
func PresetsFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets.yaml"), nil
}

// CaptureDir returns where finished capture archives are saved:
// $XDG_PICTURES_DIR/aurora when set, else ./captures.
func CaptureDir() string {
	if pics := os.Getenv("XDG_PICTURES_DIR"); pics != "" {
		return filepath.Join(pics, appName)
	}
	return "captures"
}
