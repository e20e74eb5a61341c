package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/pagedex/internal/index"
	"github.com/runnerr0/pagedex/internal/record"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version  string `json:"version"`
	Snapshot string `json:"snapshot"`
	Records  int    `json:"records"`
	Pages    int    `json:"pages"`
	Oldest   string `json:"oldest,omitempty"`
	Newest   string `json:"newest,omitempty"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	path, err := resolveSnapshotPath(c.Snapshot, c.globals)
	if err != nil {
		return err
	}
	store, err := loadStore(path)
	if err != nil {
		return err
	}

	return c.executeWithStore(store, path)
}

// executeWithStore runs status against a provided store (for testing).
func (c *StatusCommand) executeWithStore(store *index.Store, path string) error {
	stats := store.Stats()

	if c.globals != nil && c.globals.JSON {
		out := statusJSON{
			Version:  c.version,
			Snapshot: path,
			Records:  stats.Records,
			Pages:    stats.Pages,
		}
		if stats.Records > 0 {
			out.Oldest = stats.Oldest.Format(record.DefaultTimeLayout)
			out.Newest = stats.Newest.Format(record.DefaultTimeLayout)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println("Pagedex Status")
	fmt.Println("==============")
	fmt.Printf("Version:   %s\n", c.version)
	fmt.Printf("Snapshot:  %s\n", path)
	fmt.Printf("Records:   %d\n", stats.Records)
	fmt.Printf("Pages:     %d\n", stats.Pages)
	if stats.Records > 0 {
		fmt.Printf("Oldest:    %s\n", stats.Oldest.Format(record.DefaultTimeLayout))
		fmt.Printf("Newest:    %s\n", stats.Newest.Format(record.DefaultTimeLayout))
	}

	return nil
}
