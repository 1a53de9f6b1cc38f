package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConsensusOK(t *testing.T) {
	src := writeSource(t, "counter.rift", goodSource)

	stdout, err := execRiftc(t, "check", src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+src)
	assert.Contains(t, stdout, "consensus ok")
	assert.Contains(t, stdout, "classical mode")
}

func TestCheckConsensusFailure(t *testing.T) {
	src := writeSource(t, "bad.rift", badSource)

	stdout, err := execRiftc(t, "check", src)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ "+src)
	assert.Contains(t, stdout, "memory-first ordering")
}

func TestCheckJSONIncludesDiagnostic(t *testing.T) {
	src := writeSource(t, "bad.rift", badSource)

	stdout, err := execRiftc(t, "--format", "json", "check", src)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status, "link itself succeeded; the payload carries the verdict")

	data := resp.Data.(map[string]any)
	assert.Equal(t, false, data["consensus_ok"])
	assert.Contains(t, data["diagnostic"], "line 1")
}

func TestCheckUnreadableSource(t *testing.T) {
	stdout, err := execRiftc(t, "check", filepath.Join(t.TempDir(), "missing.rift"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "E001")
}

func TestCheckModeFlag(t *testing.T) {
	src := writeSource(t, "nogov.rift", "align span<fixed> { bytes: 4096 }\n")

	stdout, err := execRiftc(t, "check", src, "--mode", "hybrid")
	require.NoError(t, err)
	assert.Contains(t, stdout, "hybrid mode")
}

func TestTargetsText(t *testing.T) {
	stdout, err := execRiftc(t, "targets")
	require.NoError(t, err)

	for _, name := range []string{"javascript", "python", "go", "lua", "wat"} {
		assert.Contains(t, stdout, name)
	}
	assert.Contains(t, stdout, ".mjs")
	assert.Contains(t, stdout, ".wasm")
}

func TestTargetsJSON(t *testing.T) {
	stdout, err := execRiftc(t, "--format", "json", "targets")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Equal(t, "ok", resp.Status)

	infos := resp.Data.([]any)
	assert.Len(t, infos, 5)
}

func TestHistoryEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	stdout, err := execRiftc(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no recorded runs")
}

func TestHistoryListsRuns(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")
	src := writeSource(t, "counter.rift", goodSource)

	_, err := execRiftc(t, "compile", src, "-o", filepath.Join(dir, "counter.py"), "--history", db)
	require.NoError(t, err)

	bad := writeSource(t, "bad.rift", badSource)
	_, err = execRiftc(t, "compile", bad, "-o", filepath.Join(dir, "bad.py"), "--history", db)
	require.Error(t, err)

	stdout, err := execRiftc(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+src)
	assert.Contains(t, stdout, "✗ "+bad)
	assert.Contains(t, stdout, "memory-first ordering")
}

func TestHistoryRequiresDBFlag(t *testing.T) {
	_, err := execRiftc(t, "history")
	require.Error(t, err)
}
