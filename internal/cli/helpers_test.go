package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Golden files hold uncolored text
	color.NoColor = true
	os.Exit(m.Run())
}

const partsJSON = `[
  {"name": "bolt", "qty": 3},
  {"name": "nut", "qty": 10},
  {},
  {"qty": 3, "name": "bolt"},
  {"name": "washer", "qty": 1}
]`

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// newTestDB returns a fresh store path in a temp directory.
func newTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// importParts stores the five-element "parts" fixture in db.
func importParts(t *testing.T, db string) {
	t.Helper()
	importColumn(t, db, "parts", "parts.json", partsJSON)
}

func importColumn(t *testing.T, db, name, file, body string, extra ...string) {
	t.Helper()
	args := append([]string{"--db", db, "import", name, writeFile(t, file, body)}, extra...)
	_, err := execute(t, args...)
	require.NoError(t, err)
}
