package main

import (
	"fmt"

	"github.com/tmarsh/tally/internal/config"
	"github.com/tmarsh/tally/internal/kvstore"
	"github.com/tmarsh/tally/internal/paths"
	"github.com/tmarsh/tally/task"
)

// openManager loads the config, opens the persistence namespace, and
// returns a manager backed by it.
func openManager() (*task.Manager, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	dir, err := paths.DataDir(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	store, err := kvstore.Open(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open task store: %w", err)
	}

	return task.NewManager(store), cfg, nil
}
