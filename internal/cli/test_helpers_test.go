package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// writeSourceFile writes a pageview dump with the given lines and
// returns its path.
func writeSourceFile(t *testing.T, lines string) string {
	t.Helper()
	path := t.TempDir() + "/pageviews.tsv"
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))
	return path
}
