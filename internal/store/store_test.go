package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string) Run {
	return Run{
		ID:          id,
		SourcePath:  "counter.rift",
		SourceHash:  HashSource("count := 10"),
		Target:      "python",
		Mode:        "classical",
		ConsensusOK: true,
		NodeCount:   3,
	}
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.RecordRun(context.Background(), sampleRun(NewRunID())))
	require.NoError(t, s1.Close())

	// Reopening applies the schema again without error and keeps data.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	runs, err := s2.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecordRunRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := sampleRun(NewRunID())
	run.ConsensusOK = false
	run.Diagnostic = "line 1: assignment before span declaration (violates memory-first ordering)"
	require.NoError(t, s.RecordRun(ctx, run))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run, runs[0])
}

func TestRecordRunDuplicateIDIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := sampleRun(NewRunID())
	require.NoError(t, s.RecordRun(ctx, run))

	dup := run
	dup.Target = "lua"
	require.NoError(t, s.RecordRun(ctx, dup))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "python", runs[0].Target, "first insert wins")
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := sampleRun(NewRunID())
		run.SourcePath = fmt.Sprintf("job_%d.rift", i)
		require.NoError(t, s.RecordRun(ctx, run))
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "job_4.rift", runs[0].SourcePath)
	assert.Equal(t, "job_3.rift", runs[1].SourcePath)
	assert.Equal(t, "job_2.rift", runs[2].SourcePath)
}

func TestListRunsDefaultLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, s.RecordRun(ctx, sampleRun(NewRunID())))
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 20)
}

func TestHashSource(t *testing.T) {
	h1 := HashSource("x := 1")
	h2 := HashSource("x := 1")
	h3 := HashSource("x := 2")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestNewRunIDUnique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
}
