package pairjob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dualsub/internal/history"
	"dualsub/internal/logging"
)

const lockFileName = ".dualsub.lock"

// PairResult is the batch view of one spec.
type PairResult struct {
	Spec    Spec               `json:"spec"`
	Status  history.PairStatus `json:"status"`
	Outcome Outcome            `json:"outcome"`
	Kind    string             `json:"error_kind,omitempty"`
	Err     error              `json:"-"`
	Message string             `json:"error,omitempty"`
}

// BatchReport summarizes a batch run. Results follow the order of the specs
// passed to RunBatch.
type BatchReport struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Results    []PairResult  `json:"results"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	Skipped    int           `json:"skipped"`
	Pruned     int64         `json:"pruned,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// RunBatch synchronizes specs on a bounded worker pool. A failing pair is
// recorded and the batch continues; skipped specs are recorded without
// running. Every output directory is locked for the duration of the run so
// two batches never write the same files. Cancelling ctx stops new pairs from
// starting; pairs that never started are reported as canceled and the
// context error is returned with the partial report.
func (r *Runner) RunBatch(ctx context.Context, specs []Spec) (BatchReport, error) {
	report := BatchReport{
		RunID:     uuid.NewString(),
		StartedAt: r.now(),
		Results:   make([]PairResult, len(specs)),
	}
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, r.logger)

	unlock, err := lockOutputDirs(specs)
	if err != nil {
		return BatchReport{}, err
	}
	defer unlock()

	recorder := r.beginRun(ctx, &report, specs)

	g := new(errgroup.Group)
	g.SetLimit(r.workers)
	for i, spec := range specs {
		if spec.Skipped() {
			report.Results[i] = PairResult{Spec: spec, Status: history.StatusSkipped, Kind: string(KindNotFound),
				Message: fmt.Sprintf("missing %s track", spec.Missing)}
			logging.WarnWithContext(logging.WithContext(logging.WithPair(ctx, spec.Name), r.logger),
				"pair skipped", "pair_skipped",
				logging.String("missing", spec.Missing),
				logging.String(logging.FieldErrorHint, "add the partner track or pass explicit names"),
				logging.String(logging.FieldImpact, "pair not synchronized"),
			)
			continue
		}
		if ctx.Err() != nil {
			report.Results[i] = failedResult(spec, Outcome{Name: spec.Name},
				&Error{Kind: KindCanceled, Op: "sync", Path: spec.Name, Err: ctx.Err()})
			continue
		}
		g.Go(func() error {
			outcome, err := r.RunPair(ctx, spec)
			if err != nil {
				report.Results[i] = failedResult(spec, outcome, err)
				logging.ErrorWithContext(logging.WithContext(logging.WithPair(ctx, spec.Name), r.logger),
					"pair failed", "pair_failed",
					logging.Error(err),
				)
				return nil
			}
			report.Results[i] = PairResult{Spec: spec, Status: history.StatusSucceeded, Outcome: outcome}
			return nil
		})
	}
	_ = g.Wait()

	for _, result := range report.Results {
		switch result.Status {
		case history.StatusSucceeded:
			report.Succeeded++
		case history.StatusSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
		r.recordPair(ctx, recorder, report.RunID, result)
	}

	report.FinishedAt = r.now()
	report.Duration = report.FinishedAt.Sub(report.StartedAt)
	r.finishRun(ctx, recorder, &report)

	logger.Info("batch finished",
		logging.Int("succeeded", report.Succeeded),
		logging.Int("failed", report.Failed),
		logging.Int("skipped", report.Skipped),
		logging.Duration("duration", report.Duration),
	)
	return report, ctx.Err()
}

func failedResult(spec Spec, outcome Outcome, err error) PairResult {
	return PairResult{
		Spec:    spec,
		Status:  history.StatusFailed,
		Outcome: outcome,
		Kind:    KindOf(err),
		Err:     err,
		Message: err.Error(),
	}
}

// lockOutputDirs takes an exclusive lock in every distinct output directory.
// The returned func releases them.
func lockOutputDirs(specs []Spec) (func(), error) {
	dirs := make([]string, 0, len(specs))
	for _, spec := range specs {
		if spec.OutputDir != "" {
			dirs = append(dirs, filepath.Clean(spec.OutputDir))
		}
	}
	slices.Sort(dirs)
	dirs = slices.Compact(dirs)

	locks := make([]*flock.Flock, 0, len(dirs))
	release := func() {
		for _, lock := range locks {
			_ = lock.Unlock()
		}
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			release()
			return nil, &Error{Kind: KindWrite, Op: "create output directory", Path: dir, Err: err}
		}
		lock := flock.New(filepath.Join(dir, lockFileName))
		ok, err := lock.TryLock()
		if err != nil {
			release()
			return nil, fmt.Errorf("lock %s: %w", dir, err)
		}
		if !ok {
			release()
			return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
		}
		locks = append(locks, lock)
	}
	return release, nil
}

// beginRun opens the history row. It returns nil when history is disabled
// or unavailable, in which case the batch runs unrecorded.
func (r *Runner) beginRun(ctx context.Context, report *BatchReport, specs []Spec) Recorder {
	if r.recorder == nil {
		return nil
	}
	run := history.Run{ID: report.RunID, StartedAt: report.StartedAt}
	if len(specs) > 0 {
		run.OutputDir = specs[0].OutputDir
		for _, path := range []string{specs[0].PrimaryPath, specs[0].SecondaryPath} {
			if path != "" {
				run.InputDir = filepath.Dir(path)
				break
			}
		}
	}
	if _, err := r.recorder.BeginRun(context.WithoutCancel(ctx), run); err != nil {
		r.warnHistory(ctx, "begin run", err)
		return nil
	}
	return r.recorder
}

func (r *Runner) recordPair(ctx context.Context, recorder Recorder, runID string, result PairResult) {
	if recorder == nil {
		return
	}
	record := history.PairRecord{
		RunID:              runID,
		Name:               result.Spec.Name,
		PrimaryPath:        result.Spec.PrimaryPath,
		SecondaryPath:      result.Spec.SecondaryPath,
		Status:             result.Status,
		Pairs:              result.Outcome.Pairs,
		UnmatchedPrimary:   result.Outcome.UnmatchedPrimary,
		UnmatchedSecondary: result.Outcome.UnmatchedSecondary,
		Duplicates:         result.Outcome.Duplicates,
		ErrorKind:          result.Kind,
		ErrorMessage:       result.Message,
		Duration:           result.Outcome.Duration,
	}
	if err := recorder.RecordPair(context.WithoutCancel(ctx), record); err != nil {
		r.warnHistory(ctx, "record pair", err)
	}
}

func (r *Runner) finishRun(ctx context.Context, recorder Recorder, report *BatchReport) {
	if recorder == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if _, err := recorder.FinishRun(ctx, report.RunID, report.FinishedAt); err != nil {
		r.warnHistory(ctx, "finish run", err)
		return
	}
	pruned, err := recorder.Prune(ctx, r.keepRuns)
	if err != nil {
		r.warnHistory(ctx, "prune history", err)
		return
	}
	report.Pruned = pruned
}

func (r *Runner) warnHistory(ctx context.Context, op string, err error) {
	logging.WarnWithContext(logging.WithContext(ctx, r.logger), "run history unavailable", "history_write_failed",
		logging.String("operation", op),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "delete history.db if the schema changed"),
		logging.String(logging.FieldImpact, "this run is missing from dualsub history"),
	)
}
