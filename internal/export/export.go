// Package export dumps an index snapshot into a SQLite database so the
// records can be inspected with ad-hoc SQL.
package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runnerr0/pagedex/internal/record"
)

// SQLiteExporter writes records into an already-opened and migrated
// SQLite database.
type SQLiteExporter struct {
	db     *sql.DB
	insert *sql.Stmt
}

// NewSQLiteExporter creates a SQLiteExporter from an already-opened and
// migrated database.
func NewSQLiteExporter(db *sql.DB) (*SQLiteExporter, error) {
	insert, err := db.Prepare(`
		INSERT INTO pageviews (ts, page, counter)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	return &SQLiteExporter{db: db, insert: insert}, nil
}

// ExportRecords inserts all records in a single transaction, preserving
// their order. A failed insert rolls the whole export back.
func (e *SQLiteExporter) ExportRecords(ctx context.Context, recs []record.Record) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt := tx.StmtContext(ctx, e.insert)
	for i, r := range recs {
		_, err := stmt.ExecContext(ctx,
			r.Time.Format(record.DefaultTimeLayout), r.Page, r.Counter,
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of exported pageview rows.
func (e *SQLiteExporter) Count(ctx context.Context) (int64, error) {
	var n int64
	err := e.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pageviews").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pageviews: %w", err)
	}
	return n, nil
}

// Close releases the prepared statement. The underlying *sql.DB is NOT
// closed — that is the caller's responsibility.
func (e *SQLiteExporter) Close() error {
	if e.insert != nil {
		e.insert.Close()
	}
	return nil
}
