package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/pagedex/internal/export"
	"github.com/runnerr0/pagedex/internal/index"
	"github.com/runnerr0/pagedex/internal/record"
)

// exportJSON is the JSON output structure for the export command.
type exportJSON struct {
	Snapshot string `json:"snapshot"`
	Database string `json:"database"`
	Records  int64  `json:"records"`
}

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	if c.Database == "" {
		return fmt.Errorf("--db is required")
	}

	path, err := resolveSnapshotPath(c.Snapshot, c.globals)
	if err != nil {
		return err
	}
	store, err := loadStore(path)
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", c.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	runner := export.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	exporter, err := export.NewSQLiteExporter(db)
	if err != nil {
		return fmt.Errorf("create exporter: %w", err)
	}
	defer exporter.Close()

	return c.executeWithExporter(store, exporter, path)
}

// executeWithExporter runs the export against a provided store and
// exporter (for testing).
func (c *ExportCommand) executeWithExporter(store *index.Store, exporter *export.SQLiteExporter, path string) error {
	ctx := context.Background()

	recs := make([]record.Record, 0, store.Len())
	for i := 0; i < store.Len(); i++ {
		recs = append(recs, store.Record(i))
	}

	if err := exporter.ExportRecords(ctx, recs); err != nil {
		return fmt.Errorf("export records: %w", err)
	}

	count, err := exporter.Count(ctx)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(exportJSON{Snapshot: path, Database: c.Database, Records: count})
	}

	fmt.Printf("Exported %d records into %s\n", count, c.Database)
	return nil
}
