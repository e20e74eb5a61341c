package cli

import (
	"fmt"
	"os"

	"github.com/runnerr0/pagedex/internal/index"
)

// Execute implements the go-flags Commander interface for PrintCommand.
func (c *PrintCommand) Execute(args []string) error {
	path, err := resolveSnapshotPath(c.Snapshot, c.globals)
	if err != nil {
		return err
	}
	store, err := loadStore(path)
	if err != nil {
		return err
	}

	return c.executeWithStore(store)
}

// executeWithStore prints from a provided store (for testing).
func (c *PrintCommand) executeWithStore(store *index.Store) error {
	if c.Index < 0 {
		return store.PrintAll(os.Stdout)
	}

	if c.Index >= store.Len() {
		return fmt.Errorf("index %d out of range (store holds %d records)", c.Index, store.Len())
	}
	return store.Print(os.Stdout, c.Index)
}
