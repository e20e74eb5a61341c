package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// BuildCommand — parse a pageview dump, sort it, save the snapshot.
type BuildCommand struct {
	Source string `long:"source" description:"Path to the tab-separated pageview dump (required)"`
	Out    string `long:"out" description:"Snapshot output path (defaults to the configured snapshot path)"`

	globals *GlobalFlags
	version string
}

// QueryCommand — range / top-k query against a snapshot.
type QueryCommand struct {
	Page     string `long:"page" description:"Page identifier (required)"`
	From     string `long:"from" description:"Window start, YYYYMMDD-HH (required)"`
	To       string `long:"to" description:"Window end, YYYYMMDD-HH (required)"`
	Top      int    `long:"top" description:"Keep only the k earliest records (0 = no truncation, default from config)" default:"-1"`
	Snapshot string `long:"snapshot" description:"Snapshot path (defaults to the configured snapshot path)"`

	globals *GlobalFlags
	version string
}

// PrintCommand — debug-render one or all stored records.
type PrintCommand struct {
	Index    int    `long:"index" description:"Print only the record at this position" default:"-1"`
	Snapshot string `long:"snapshot" description:"Snapshot path (defaults to the configured snapshot path)"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show snapshot statistics.
type StatusCommand struct {
	Snapshot string `long:"snapshot" description:"Snapshot path (defaults to the configured snapshot path)"`

	globals *GlobalFlags
	version string
}

// ExportCommand — dump a snapshot into a SQLite database.
type ExportCommand struct {
	Database string `long:"db" description:"SQLite database output path (required)"`
	Snapshot string `long:"snapshot" description:"Snapshot path (defaults to the configured snapshot path)"`

	globals *GlobalFlags
	version string
}
