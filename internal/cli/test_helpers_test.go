package cli

import (
	"bytes"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/mainthread/internal/config"
	"github.com/runnerr0/mainthread/internal/storage"
)

// sampleTrace has two top-level tasks on pid 1 / tid 1:
// RunTask [0,10ms) containing EvaluateScript [1,7ms), then Layout [11,14ms).
const sampleTrace = `{"traceEvents":[
	{"name":"TracingStartedInPage","ph":"I","ts":1000,"pid":1,"tid":1},
	{"name":"RunTask","ph":"X","ts":1000,"dur":10000,"pid":1,"tid":1},
	{"name":"EvaluateScript","ph":"X","ts":2000,"dur":6000,"pid":1,"tid":1,
	 "args":{"data":{"url":"https://example.com/app.js"}}},
	{"name":"Layout","ph":"X","ts":12000,"dur":3000,"pid":1,"tid":1},
	{"name":"RunTask","ph":"X","ts":1500,"dur":100,"pid":1,"tid":2}
]}`

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

// isolateHome points the default config and archive at a temp directory.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// writeTrace writes body to a file in a temp directory and returns its path.
func writeTrace(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// testConfig returns defaults with storage rooted in a temp directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Path = t.TempDir()
	return cfg
}

// setupTestStore creates a migrated in-memory store.
func setupTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}
