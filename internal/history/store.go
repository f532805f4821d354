package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const runColumns = "id, started_at, finished_at, input_dir, output_dir, total, succeeded, failed, skipped"

const pairColumns = "run_id, name, primary_path, secondary_path, status, pairs, unmatched_primary, unmatched_secondary, duplicates, error_kind, error_message, duration_ms, recorded_at"

// BeginRun inserts a new run row. An empty run.ID is replaced with a random
// UUID; a zero StartedAt becomes the current time. The stored run is returned.
func (s *Store) BeginRun(ctx context.Context, run Run) (Run, error) {
	if strings.TrimSpace(run.ID) == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	_, err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, started_at, input_dir, output_dir) VALUES (?, ?, ?, ?)`,
		run.ID, formatTime(run.StartedAt), run.InputDir, run.OutputDir,
	)
	if err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}
	return run, nil
}

// RecordPair stores the outcome of one pair.
func (s *Store) RecordPair(ctx context.Context, record PairRecord) error {
	if strings.TrimSpace(record.RunID) == "" {
		return errors.New("record pair: run id is required")
	}
	if record.Status == "" {
		return errors.New("record pair: status is required")
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now()
	}

	_, err := s.execWithRetry(ctx,
		`INSERT INTO run_pairs (`+pairColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.Name,
		record.PrimaryPath,
		record.SecondaryPath,
		string(record.Status),
		record.Pairs,
		record.UnmatchedPrimary,
		record.UnmatchedSecondary,
		record.Duplicates,
		record.ErrorKind,
		record.ErrorMessage,
		record.Duration.Milliseconds(),
		formatTime(record.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("record pair %s: %w", record.Name, err)
	}
	return nil
}

// FinishRun stamps the run as finished and aggregates its totals from the
// recorded pairs.
func (s *Store) FinishRun(ctx context.Context, runID string, finishedAt time.Time) (Run, error) {
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}
	res, err := s.execWithRetry(ctx, `
		UPDATE runs SET
			finished_at = ?,
			total     = (SELECT COUNT(1) FROM run_pairs WHERE run_id = runs.id),
			succeeded = (SELECT COUNT(1) FROM run_pairs WHERE run_id = runs.id AND status = ?),
			failed    = (SELECT COUNT(1) FROM run_pairs WHERE run_id = runs.id AND status = ?),
			skipped   = (SELECT COUNT(1) FROM run_pairs WHERE run_id = runs.id AND status = ?)
		WHERE id = ?`,
		formatTime(finishedAt),
		string(StatusSucceeded), string(StatusFailed), string(StatusSkipped),
		runID,
	)
	if err != nil {
		return Run{}, fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Run{}, fmt.Errorf("finish run: unknown run %q", runID)
	}
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return Run{}, err
	}
	if run == nil {
		return Run{}, fmt.Errorf("finish run: unknown run %q", runID)
	}
	return *run, nil
}

// GetRun returns the run with the given ID, or nil when it does not exist.
// A unique ID prefix is accepted so users can paste the short form shown
// by the history table.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ORDER BY id = ? DESC LIMIT 2`,
		runID, stripLikeWildcards(runID)+"%", runID,
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("get run: %w", err)
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	switch {
	case len(matches) == 0:
		return nil, nil
	case matches[0].ID == runID || len(matches) == 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("get run: prefix %q matches more than one run", runID)
	}
}

// ListRuns returns the newest runs first. A limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunPairs returns the recorded pairs of a run in the order they finished.
func (s *Store) RunPairs(ctx context.Context, runID string) ([]PairRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pairColumns+` FROM run_pairs WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("run pairs: %w", err)
	}
	defer rows.Close()

	var records []PairRecord
	for rows.Next() {
		record, err := scanPair(rows)
		if err != nil {
			return nil, fmt.Errorf("run pairs: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Prune deletes all but the newest keep runs and their pairs. keep <= 0
// disables pruning. It returns the number of runs removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	const stale = `SELECT id FROM runs ORDER BY started_at DESC, id LIMIT -1 OFFSET ?`
	if _, err := s.execWithRetry(ctx, `DELETE FROM run_pairs WHERE run_id IN (`+stale+`)`, keep); err != nil {
		return 0, fmt.Errorf("prune run pairs: %w", err)
	}
	res, err := s.execWithRetry(ctx, `DELETE FROM runs WHERE id IN (`+stale+`)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func stripLikeWildcards(value string) string {
	return strings.NewReplacer(`%`, ``, `_`, ``).Replace(value)
}
