package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/pagedex/internal/index"
	"github.com/runnerr0/pagedex/internal/record"
)

// Execute implements the go-flags Commander interface for QueryCommand.
func (c *QueryCommand) Execute(args []string) error {
	if c.Page == "" {
		return fmt.Errorf("--page is required")
	}
	if c.From == "" {
		return fmt.Errorf("--from is required")
	}
	if c.To == "" {
		return fmt.Errorf("--to is required")
	}

	// --top unset: fall back to the configured result limit.
	if c.Top < 0 {
		cfg, err := loadConfig(c.globals)
		if err != nil {
			return err
		}
		c.Top = cfg.Query.Limit
	}

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

// executeWithStore runs the query against a provided store (for testing).
func (c *QueryCommand) executeWithStore(store *index.Store) error {
	var results []record.Record
	var err error
	if c.Top > 0 {
		results, err = store.TopKTimes(c.Page, c.From, c.To, c.Top)
	} else {
		results, err = store.RangeTimes(c.Page, c.From, c.To)
	}
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(results)
	}
	return c.printHuman(results)
}

func (c *QueryCommand) printHuman(results []record.Record) error {
	if len(results) == 0 {
		fmt.Printf("No records for %q in [%s, %s]\n", c.Page, c.From, c.To)
		return nil
	}

	recordWord := "records"
	if len(results) == 1 {
		recordWord = "record"
	}
	fmt.Printf("Found %d %s for %q in [%s, %s]\n\n", len(results), recordWord, c.Page, c.From, c.To)

	for _, r := range results {
		fmt.Printf("  %s  %d\n", r.Time.Format(record.DefaultTimeLayout), r.Counter)
	}

	return nil
}

type jsonRecord struct {
	Time    string `json:"time"`
	Page    string `json:"page"`
	Counter uint64 `json:"counter"`
}

type jsonQueryOutput struct {
	Count   int          `json:"count"`
	Page    string       `json:"page"`
	From    string       `json:"from"`
	To      string       `json:"to"`
	Top     int          `json:"top,omitempty"`
	Results []jsonRecord `json:"results"`
}

func (c *QueryCommand) printJSON(results []record.Record) error {
	out := jsonQueryOutput{
		Count:   len(results),
		Page:    c.Page,
		From:    c.From,
		To:      c.To,
		Top:     c.Top,
		Results: make([]jsonRecord, len(results)),
	}

	for i, r := range results {
		out.Results[i] = jsonRecord{
			Time:    r.Time.Format(record.DefaultTimeLayout),
			Page:    r.Page,
			Counter: r.Counter,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
