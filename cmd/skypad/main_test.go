package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"skypad/internal/notes"
)

// testEnv points the CLI at a fresh database file.
func testEnv(t *testing.T) string {
	t.Helper()
	color.NoColor = true

	dbPath := filepath.Join(t.TempDir(), "skypad.db")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("DB_MAX_SIZE_BYTES", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "")
	return dbPath
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := run(t, "", args...)
	require.NoError(t, err, "skypad %v: %s", args, errOut)
	return out
}

func TestCLI_Lifecycle(t *testing.T) {
	testEnv(t)

	out := mustRun(t, "list")
	assert.Contains(t, out, "No notes found.")

	out = mustRun(t, "add", "Groceries", "--body", "milk, eggs")
	assert.Contains(t, out, "Created note #1")

	mustRun(t, "add", "Work", "--body", "ship the release")

	out = mustRun(t, "list")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "milk, eggs")
	assert.Less(t, strings.Index(out, "Groceries"), strings.Index(out, "Work"))

	out = mustRun(t, "list", "--order", "title", "--desc")
	assert.Less(t, strings.Index(out, "Work"), strings.Index(out, "Groceries"))

	out = mustRun(t, "search", "milk")
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "Work")

	out = mustRun(t, "edit", "1", "--body", "milk, eggs, bread")
	assert.Contains(t, out, "Updated note #1")

	out = mustRun(t, "show", "1")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "bread")
	assert.Contains(t, out, "Updated:")

	out, _, err := run(t, "n\n", "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out = mustRun(t, "rm", "1", "--force")
	assert.Contains(t, out, "Deleted note")
	assert.Contains(t, out, "Work")

	// Removing a note that is already gone succeeds.
	mustRun(t, "rm", "1", "--force")

	out = mustRun(t, "list", "-s", "milk")
	assert.Contains(t, out, "No notes found.")
}

func TestCLI_AddFromStdin(t *testing.T) {
	testEnv(t)

	out, _, err := run(t, "# Title\n\nfrom stdin", "add", "Piped", "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Created note #1")

	out = mustRun(t, "show", "1")
	assert.Contains(t, out, "from stdin")
}

func TestCLI_AddEmptyBody(t *testing.T) {
	testEnv(t)

	_, errOut, err := run(t, "", "add", "Empty")

	require.ErrorIs(t, err, notes.ErrInvalidInput)
	assert.Contains(t, errOut, notes.EmptyFieldMessage+" (Code 0)")
}

func TestCLI_ShowMissing(t *testing.T) {
	testEnv(t)

	_, errOut, err := run(t, "", "show", "42")

	require.Error(t, err)
	assert.Contains(t, errOut, "Oops.  Error was")
}

func TestCLI_InvalidArguments(t *testing.T) {
	testEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "non-numeric id", args: []string{"show", "abc"}},
		{name: "zero id", args: []string{"rm", "0", "-f"}},
		{name: "unknown order field", args: []string{"list", "--order", "colour"}},
		{name: "unknown export format", args: []string{"export", "--format", "xml"}},
		{name: "missing title", args: []string{"add"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCLI_Export(t *testing.T) {
	testEnv(t)
	mustRun(t, "add", "Groceries", "--body", "milk")
	mustRun(t, "add", "Books", "--body", "Dune")

	t.Run("yaml to stdout", func(t *testing.T) {
		out := mustRun(t, "export", "--format", "yaml")

		var got exportData
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		require.Len(t, got.Notes, 2)
		assert.Equal(t, "Groceries", got.Notes[0].Title)
		assert.Equal(t, int64(2), got.Notes[1].ID)
		assert.NotNil(t, got.Notes[0].UpdatedAt)
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.json")
		out := mustRun(t, "export", "-o", path, "-s", "dune")
		assert.Contains(t, out, "Exported 1 notes")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got exportData
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got.Notes, 1)
		assert.Equal(t, "Books", got.Notes[0].Title)
	})
}

func TestCLI_Drop(t *testing.T) {
	testEnv(t)
	mustRun(t, "add", "Groceries", "--body", "milk")

	out := mustRun(t, "drop", "--force")
	assert.Contains(t, out, "Dropped notes table")

	// The next command recreates the table.
	out = mustRun(t, "list")
	assert.Contains(t, out, "No notes found.")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", firstLine("one"))
	assert.Equal(t, "one ...", firstLine("one\ntwo"))
}

func TestCLI_Import(t *testing.T) {
	testEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groceries.md"), []byte("# Groceries\n\nmilk"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "work"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "work", "release-plan.md"), []byte("ship it"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.md"), nil, 0o644))

	out := mustRun(t, "import", dir)
	assert.Contains(t, out, "Imported 2 notes")
	assert.Contains(t, out, "skipped empty empty.md")

	out = mustRun(t, "list")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Release Plan")
}
