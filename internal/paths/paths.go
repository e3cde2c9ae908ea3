// Package paths resolves the directories tally keeps its data in.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvDataDir is the environment variable overriding the data directory.
const EnvDataDir = "TALLY_DATA_DIR"

// DefaultDataDir returns the default tally data directory.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".local", "state", "tally"), nil
}

// DataDir resolves the data directory: the environment override wins, then
// the configured directory, then the default.
func DataDir(configured string) (string, error) {
	if env := strings.TrimSpace(os.Getenv(EnvDataDir)); env != "" {
		return ExpandHome(env)
	}
	if configured = strings.TrimSpace(configured); configured != "" {
		return ExpandHome(configured)
	}
	return DefaultDataDir()
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
