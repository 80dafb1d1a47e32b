package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tableprint "github.com/ryann/table-print"
)

const usersJSON = `[{"name": "Ada", "age": 36}, {"name": "Bob", "age": 7}]`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func table(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestRootStdin(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, usersJSON)
	require.NoError(t, err)
	assert.Equal(t, table(
		"NAME  | AGE",
		"-----------",
		"Ada   | 36 ",
		"Bob   | 7  ",
	), out)
}

func TestRootFileFormatFromExtension(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "users.yml", "- name: Ada\n  role: admin\n- name: Bob\n  role: dev\n")
	out, _, err := execute(t, "", "--except", "name", path)
	require.NoError(t, err)
	assert.Equal(t, table("ROLE ", "-----", "admin", "dev  "), out)
}

func TestRootFormatFlag(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "name,age\nAda,36\n", "-f", "csv", "--only", "age")
	require.NoError(t, err)
	assert.Equal(t, table("AGE", "---", "36 "), out)
}

func TestRootDelimiter(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "users.csv", "name;age\nAda;36\n")
	out, _, err := execute(t, "", "--delimiter", ";", "--only", "name", path)
	require.NoError(t, err)
	assert.Equal(t, table("NAME", "----", "Ada "), out)
}

func TestRootColumnFlags(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, usersJSON, "--name", "name=who", "--width", "name=6", "--max", "age=1")
	require.NoError(t, err)
	assert.Equal(t, table(
		"WHO     | A",
		"-----------",
		"Ada     | 3",
		"Bob     | 7",
	), out)
}

func TestRootConfigWithFlagOverride(t *testing.T) {
	t.Parallel()
	config := writeFile(t, "table.toml", `
only = ["age", "name"]

[columns.name]
field_length = 5
`)
	out, _, err := execute(t, usersJSON, "--config", config, "--only", "name")
	require.NoError(t, err)
	assert.Equal(t, table("NAME ", "-----", "Ada  ", "Bob  "), out)
}

func TestRootSQLite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE users (id INTEGER PRIMARY KEY, full_name TEXT);
		INSERT INTO users (id, full_name) VALUES (1, 'Ada Lovelace'), (2, 'Bob');
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, _, err := execute(t, "", "--sqlite", path, "SELECT full_name FROM users WHERE id = ?", "1")
	require.NoError(t, err)
	assert.Equal(t, table("FULL NAME   ", "------------", "Ada Lovelace"), out)
}

func TestRootNoData(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "[]")
	require.NoError(t, err)
	assert.Equal(t, tableprint.NoData+"\n", out)
}

func TestRootVerbose(t *testing.T) {
	t.Parallel()
	_, logs, err := execute(t, usersJSON, "-v")
	require.NoError(t, err)
	assert.Contains(t, logs, "reading records")
	assert.Contains(t, logs, "rendered table")

	_, logs, err = execute(t, usersJSON)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestRootErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		args    []string
		message string
	}{
		"sqlite without query": {args: []string{"--sqlite", "app.db"}, message: "needs a query"},
		"two files":            {args: []string{"a.json", "b.json"}, message: "at most one input file"},
		"unknown format":       {args: []string{"-f", "xml"}, message: "unsupported input format"},
		"missing file":         {args: []string{"missing.json"}, message: "missing.json"},
		"long delimiter":       {args: []string{"-f", "csv", "--delimiter", ";;"}, message: "single character"},
		"negative width":       {args: []string{"--max-width", "-2"}, message: tableprint.ErrInvalidOptions.Error()},
		"missing config":       {args: []string{"--config", "missing.toml"}, message: "open options"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := execute(t, usersJSON, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
