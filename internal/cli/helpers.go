package cli

import (
	"fmt"

	"github.com/runnerr0/pagedex/internal/config"
	"github.com/runnerr0/pagedex/internal/index"
)

// loadConfig loads the config named by --config, or the default config
// (created on first run) when the flag is unset.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	return config.LoadOrCreate()
}

// resolveSnapshotPath returns the explicit flag value, or falls back to
// the configured snapshot path with ~ expanded.
func resolveSnapshotPath(flag string, globals *GlobalFlags) (string, error) {
	if flag != "" {
		return flag, nil
	}

	cfg, err := loadConfig(globals)
	if err != nil {
		return "", err
	}
	return config.ExpandPath(cfg.Snapshot.Path)
}

// loadStore loads the snapshot at path into a fresh store.
func loadStore(path string) (*index.Store, error) {
	store := index.New()
	if err := store.LoadFile(path); err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return store, nil
}
