package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	var err error
	output := captureOutput(t, func() {
		err = RunWithArgs("0.1.0-test", []string{"--version"})
	})

	assert.NoError(t, err)
	assert.Contains(t, output, "mainthread 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output := captureOutput(t, func() {
		_ = RunWithArgs("1.2.3", []string{"--version"})
	})

	assert.Equal(t, "mainthread 1.2.3", strings.TrimSpace(output))
}

func TestStatusSubcommandRecognized(t *testing.T) {
	isolateHome(t)
	parser, _, _ := buildParser("test")
	var err error
	captureOutput(t, func() {
		_, err = parser.ParseArgs([]string{"status"})
	})
	assert.NoError(t, err)
}

func TestListSubcommandRecognized(t *testing.T) {
	isolateHome(t)
	parser, _, _ := buildParser("test")
	var err error
	output := captureOutput(t, func() {
		_, err = parser.ParseArgs([]string{"list"})
	})
	assert.NoError(t, err)
	assert.Contains(t, output, "No archived traces")
}

func TestAnalyzeRequiresInput(t *testing.T) {
	isolateHome(t)
	err := RunWithArgs("test", []string{"analyze"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one trace file or --id")
}

func TestTasksRequiresExactlyOneInput(t *testing.T) {
	err := RunWithArgs("test", []string{"tasks"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one trace file or --id")

	err = RunWithArgs("test", []string{"tasks", "a.json", "b.json"})
	require.Error(t, err)
}

func TestImportRequiresFile(t *testing.T) {
	err := RunWithArgs("test", []string{"import"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one trace file")
}

func TestRemoveRequiresID(t *testing.T) {
	err := RunWithArgs("test", []string{"remove"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id is required")
}

func TestListFlagsDefaults(t *testing.T) {
	isolateHome(t)
	p, _, c := buildParser("test")
	captureOutput(t, func() {
		_, err := p.ParseArgs([]string{"list"})
		require.NoError(t, err)
	})

	assert.Equal(t, 20, c.List.Limit)
	assert.Empty(t, c.List.Label)
}

func TestTasksFlagsParsed(t *testing.T) {
	path := writeTrace(t, "page.json", sampleTrace)
	isolateHome(t)

	p, _, c := buildParser("test")
	captureOutput(t, func() {
		_, err := p.ParseArgs([]string{"tasks", "--depth", "2", "--min-ms", "0.5", path})
		require.NoError(t, err)
	})

	assert.Equal(t, 2, c.Tasks.Depth)
	assert.Equal(t, 0.5, c.Tasks.MinMs)
}

func TestGlobalFlagsJSON(t *testing.T) {
	isolateHome(t)
	parser, globals, _ := buildParser("test")
	captureOutput(t, func() {
		_, err := parser.ParseArgs([]string{"--json", "status"})
		require.NoError(t, err)
	})
	assert.True(t, globals.JSON)
}

func TestGlobalFlagsVerbose(t *testing.T) {
	isolateHome(t)
	parser, globals, _ := buildParser("test")
	captureOutput(t, func() {
		_, err := parser.ParseArgs([]string{"--verbose", "status"})
		require.NoError(t, err)
	})
	assert.True(t, globals.Verbose)
}

func TestGlobalFlagsConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "storage:\n  path: " + dir + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0644))

	parser, globals, _ := buildParser("test")
	captureOutput(t, func() {
		_, err := parser.ParseArgs([]string{"--config", cfgPath, "status"})
		require.NoError(t, err)
	})
	assert.Equal(t, cfgPath, globals.Config)

	_, err := os.Stat(filepath.Join(dir, "traces.db"))
	assert.NoError(t, err, "archive should be created under the configured path")
}

func TestGlobalFlagsConfigInvalid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("analysis:\n  parallelism: 0\n"), 0644))

	err := RunWithArgs("test", []string{"--config", cfgPath, "status"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_ImportListAnalyzeRemove(t *testing.T) {
	isolateHome(t)
	path := writeTrace(t, "home.json", sampleTrace)

	var err error
	out := captureOutput(t, func() {
		err = RunWithArgs("test", []string{"--json", "import", "--label", "home", path})
	})
	require.NoError(t, err)

	var imported struct {
		ID     string `json:"id"`
		Events int64  `json:"events"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &imported))
	assert.True(t, strings.HasPrefix(imported.ID, "TRC-"))
	assert.Equal(t, int64(5), imported.Events)

	out = captureOutput(t, func() {
		err = RunWithArgs("test", []string{"list"})
	})
	require.NoError(t, err)
	assert.Contains(t, out, imported.ID)
	assert.Contains(t, out, "home")

	out = captureOutput(t, func() {
		err = RunWithArgs("test", []string{"analyze", "--id", imported.ID, path})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Script Evaluation"))

	out = captureOutput(t, func() {
		err = RunWithArgs("test", []string{"remove", "--id", imported.ID})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Removed "+imported.ID)

	err = RunWithArgs("test", []string{"remove", "--id", imported.ID})
	assert.Error(t, err)
}
