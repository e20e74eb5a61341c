package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	output := captureOutput(t, func() {
		err := RunWithArgs("0.1.0-test", []string{"--version"})
		assert.NoError(t, err)
	})

	assert.Contains(t, output, "pagedex 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output := captureOutput(t, func() {
		_ = RunWithArgs("1.2.3", []string{"--version"})
	})

	assert.Equal(t, "pagedex 1.2.3", strings.TrimSpace(output))
}

func TestBuildSubcommandRecognized(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"build", "--source", "/tmp/x.tsv", "--out", "/tmp/x.snap"})
	// Execute runs and fails on the missing source file; the subcommand
	// itself must be recognized.
	assert.NotContains(t, strings.ToLower(errString(err)), "unknown command")
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func TestQuerySubcommandRecognized(t *testing.T) {
	parser, _, _ := buildParser("test")
	cmd := parser.Find("query")
	assert.NotNil(t, cmd)
}

func TestAllSubcommandsExist(t *testing.T) {
	expected := []string{"build", "query", "print", "status", "export"}
	parser, _, _ := buildParser("test")

	for _, name := range expected {
		cmd := parser.Find(name)
		assert.NotNil(t, cmd, "subcommand %q should exist", name)
	}
}

func TestBuildRequiresSource(t *testing.T) {
	err := RunWithArgs("test", []string{"build"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--source is required")
}

func TestQueryRequiresPage(t *testing.T) {
	err := RunWithArgs("test", []string{"query", "--from", "20160626-00", "--to", "20160626-23"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--page is required")
}

func TestQueryRequiresFrom(t *testing.T) {
	err := RunWithArgs("test", []string{"query", "--page", "A", "--to", "20160626-23"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from is required")
}

func TestQueryRequiresTo(t *testing.T) {
	err := RunWithArgs("test", []string{"query", "--page", "A", "--from", "20160626-00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--to is required")
}

func TestExportRequiresDatabase(t *testing.T) {
	err := RunWithArgs("test", []string{"export"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--db is required")
}

func TestQueryFlagDefaults(t *testing.T) {
	p, _, c := buildParser("test")
	_, err := p.ParseArgs([]string{"query", "--from", "20160626-00", "--to", "20160626-23"})
	require.Error(t, err) // --page missing, Execute bails before flag resolution

	assert.Equal(t, -1, c.Query.Top)
	assert.Equal(t, "", c.Query.Page)
	assert.Equal(t, "20160626-00", c.Query.From)
}

func TestPrintIndexDefault(t *testing.T) {
	p, _, c := buildParser("test")
	_, err := p.ParseArgs([]string{"print", "--snapshot", "/nonexistent/x.snap"})
	require.Error(t, err) // snapshot does not exist

	assert.Equal(t, -1, c.Print.Index)
}

func TestGlobalFlagsJSON(t *testing.T) {
	parser, globals, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"--json", "status", "--snapshot", "/nonexistent/x.snap"})
	require.Error(t, err) // snapshot does not exist
	assert.True(t, globals.JSON)
}

func TestGlobalFlagsConfig(t *testing.T) {
	parser, globals, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"--config", "/tmp/test.yaml", "query"})
	require.Error(t, err) // --page missing
	assert.Equal(t, "/tmp/test.yaml", globals.Config)
}

func TestUnknownSubcommandFails(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"nonexistent"})
	require.Error(t, err)
}

func TestHelpFlagDoesNotError(t *testing.T) {
	err := RunWithArgs("test", []string{"--help"})
	assert.NoError(t, err)
}
