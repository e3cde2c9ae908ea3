// Package config handles loading the tally config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the ~/.config/tally/config.toml configuration file.
type Config struct {
	// DataDir overrides where task state is persisted.
	DataDir string `toml:"data-dir"`

	List  List  `toml:"list"`
	Clear Clear `toml:"clear"`
}

// List contains list-output configuration.
type List struct {
	// ShowArchived includes the archived history in list output by default.
	ShowArchived bool `toml:"show-archived"`
}

// Clear contains bulk-clear configuration.
type Clear struct {
	// RequireConfirm prompts before clearing tasks. Defaults to true.
	RequireConfirm bool `toml:"require-confirm"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Clear: Clear{RequireConfirm: true},
	}
}

// Load loads configuration from the user config file, falling back to the
// defaults when the file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFile(path)
}

// Path returns the location of the user config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tally", "config.toml"), nil
}

func loadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var loaded Config
	meta, err := toml.Decode(string(data), &loaded)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	// Defaults apply only to keys the file leaves undefined.
	if meta.IsDefined("data-dir") {
		cfg.DataDir = loaded.DataDir
	}
	if meta.IsDefined("list", "show-archived") {
		cfg.List.ShowArchived = loaded.List.ShowArchived
	}
	if meta.IsDefined("clear", "require-confirm") {
		cfg.Clear.RequireConfirm = loaded.Clear.RequireConfirm
	}

	return cfg, nil
}
