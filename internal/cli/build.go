package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runnerr0/pagedex/internal/config"
	"github.com/runnerr0/pagedex/internal/index"
)

// buildJSON is the JSON output structure for the build command.
type buildJSON struct {
	Source   string `json:"source"`
	Snapshot string `json:"snapshot"`
	Records  int    `json:"records"`
}

// Execute implements the go-flags Commander interface for BuildCommand.
func (c *BuildCommand) Execute(args []string) error {
	if c.Source == "" {
		return fmt.Errorf("--source is required")
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		out, err = config.ExpandPath(cfg.Snapshot.Path)
		if err != nil {
			return err
		}
	}

	store := index.NewWithLayout(cfg.Input.TimeLayout)
	if err := store.BuildFile(c.Source); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := store.SaveFile(out); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(buildJSON{Source: c.Source, Snapshot: out, Records: store.Len()})
	}

	fmt.Printf("Indexed %d records from %s into %s\n", store.Len(), c.Source, out)
	return nil
}
