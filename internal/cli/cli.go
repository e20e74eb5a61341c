package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Build  *BuildCommand
	Query  *QueryCommand
	Print  *PrintCommand
	Status *StatusCommand
	Export *ExportCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "pagedex"
	parser.LongDescription = "Build and query a sorted in-memory index over hourly pageview counters."

	cmds := &commands{
		Build:  &BuildCommand{globals: &globals, version: version},
		Query:  &QueryCommand{globals: &globals, version: version},
		Print:  &PrintCommand{globals: &globals, version: version},
		Status: &StatusCommand{globals: &globals, version: version},
		Export: &ExportCommand{globals: &globals, version: version},
	}

	parser.AddCommand("build", "Build an index from a pageview dump", "Parse a tab-separated pageview dump, sort it, and save the binary snapshot.", cmds.Build)
	parser.AddCommand("query", "Query a snapshot for a page and time window", "Load a snapshot and list all counters for a page within a time window, optionally truncated to the top-k earliest.", cmds.Query)
	parser.AddCommand("print", "Print stored records", "Print the debug rendering of one or all records in a snapshot.", cmds.Print)
	parser.AddCommand("status", "Show snapshot statistics", "Show record count, distinct pages, and covered time span of a snapshot.", cmds.Status)
	parser.AddCommand("export", "Export a snapshot to SQLite", "Dump all records of a snapshot into a SQLite database for ad-hoc SQL analysis.", cmds.Export)

	return parser, &globals, cmds
}

// Run is the main entry point for the pagedex CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("pagedex %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
