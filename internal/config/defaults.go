package config

import "github.com/runnerr0/pagedex/internal/record"

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Snapshot: SnapshotConfig{
			Path: "~/.config/pagedex/pagedex.snap",
		},
		Input: InputConfig{
			TimeLayout: record.DefaultTimeLayout,
		},
		Query: QueryConfig{
			Limit: 10,
		},
	}
}
