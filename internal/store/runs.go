package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Run is one recorded compile attempt.
type Run struct {
	ID          string `json:"id"`
	SourcePath  string `json:"source_path"`
	SourceHash  string `json:"source_hash"`
	Target      string `json:"target"`
	Mode        string `json:"mode"`
	ConsensusOK bool   `json:"consensus_ok"`
	Diagnostic  string `json:"diagnostic,omitempty"`
	NodeCount   int    `json:"node_count"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// HashSource returns the sha256 hex digest of source text, used to
// correlate runs of identical input.
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// RecordRun inserts a compile run. Duplicate IDs are silently ignored
// for idempotency; other constraint violations still return errors.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	consensus := 0
	if run.ConsensusOK {
		consensus = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, source_path, source_hash, target, mode, consensus_ok, diagnostic, node_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.SourcePath,
		run.SourceHash,
		run.Target,
		run.Mode,
		consensus,
		run.Diagnostic,
		run.NodeCount,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	return nil
}

// ListRuns returns the most recent runs, newest first. Ordering uses
// rowid, never wall-clock time, so listings are deterministic.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_path, source_hash, target, mode, consensus_ok, diagnostic, node_count
		FROM runs
		ORDER BY rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var consensus int
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.SourceHash, &r.Target, &r.Mode,
			&consensus, &r.Diagnostic, &r.NodeCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.ConsensusOK = consensus == 1
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}
