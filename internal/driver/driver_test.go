package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/refract/internal/driver"
	"github.com/oxhq/refract/internal/query"
	"github.com/oxhq/refract/lang/pylite"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunRenamesFunctionAndWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "mod.py", "def greet(name):\n    pass\n")

	q := query.New(path)
	q.Write = true
	q.SelectFunction("greet").Rename("greet", "farewell")
	require.NoError(t, q.Err())

	lang := pylite.New()
	result, err := driver.Run(context.Background(), lang, q, driver.Options{TxLogDir: filepath.Join(dir, "tx")})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesModified)
	assert.Equal(t, 1, result.TotalMatches)
	assert.NotEmpty(t, result.TransactionID)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def farewell(name):\n    pass\n", string(out))
}

func TestRunDryRunLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "mod.py", "def greet(name):\n    pass\n")

	q := query.New(path)
	q.SelectFunction("greet").Rename("greet", "farewell")
	require.NoError(t, q.Err())

	lang := pylite.New()
	result, err := driver.Run(context.Background(), lang, q, driver.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalMatches)
	assert.False(t, result.Files[0].Modified)
	assert.Contains(t, result.Files[0].Diff, "farewell")

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def greet(name):\n    pass\n", string(out))
}

func TestRunInteractiveRejectSkipsWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "mod.py", "def greet(name):\n    pass\n")

	q := query.New(path)
	q.Write = true
	q.Interactive = true
	q.SelectFunction("greet").Rename("greet", "farewell")
	require.NoError(t, q.Err())

	lang := pylite.New()
	result, err := driver.Run(context.Background(), lang, q, driver.Options{
		TxLogDir: filepath.Join(dir, "tx"),
		In:       strings.NewReader("n\n"),
		Out:      &strings.Builder{},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesModified)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def greet(name):\n    pass\n", string(out))
}

func TestRunWalksDirectoryForPythonFiles(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.py", "def greet(name):\n    pass\n")
	writeTempFile(t, dir, "b.txt", "not python\n")

	q := query.New(dir)
	q.SelectFunction("greet").Rename("greet", "farewell")
	require.NoError(t, q.Err())

	lang := pylite.New()
	result, err := driver.Run(context.Background(), lang, q, driver.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesScanned)
}
