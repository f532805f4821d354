package pairjob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"dualsub/internal/alignment"
	"dualsub/internal/config"
	"dualsub/internal/cue"
	"dualsub/internal/fileutil"
	"dualsub/internal/logging"
	"dualsub/internal/subtitles"
)

// Spec names one primary/secondary track pair and where its output goes.
// A non-empty Missing marks a discovered track whose partner was not found.
type Spec struct {
	Name          string `json:"name"`
	PrimaryPath   string `json:"primary_path,omitempty"`
	SecondaryPath string `json:"secondary_path,omitempty"`
	OutputDir     string `json:"output_dir"`
	Missing       string `json:"missing,omitempty"`
}

// Skipped reports whether the spec lacks one of its tracks.
func (s Spec) Skipped() bool {
	return s.Missing != ""
}

// Outcome summarizes a synchronized pair.
type Outcome struct {
	Name               string               `json:"name"`
	PrimaryCues        int                  `json:"primary_cues"`
	SecondaryCues      int                  `json:"secondary_cues"`
	Pairs              int                  `json:"pairs"`
	UnmatchedPrimary   int                  `json:"unmatched_primary"`
	UnmatchedSecondary int                  `json:"unmatched_secondary"`
	Duplicates         int                  `json:"duplicates"`
	Passes             int                  `json:"passes"`
	Outputs            []string             `json:"outputs,omitempty"`
	Duration           time.Duration        `json:"duration"`
	PrimaryStats       subtitles.ParseStats `json:"primary_stats"`
	SecondaryStats     subtitles.ParseStats `json:"secondary_stats"`
}

// Runner synchronizes pairs using one configuration.
type Runner struct {
	tracks    config.Tracks
	clean     subtitles.CleanOptions
	align     alignment.Options
	format    subtitles.Format
	corrector *subtitles.Corrector
	workers   int
	keepRuns  int
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewRunner builds a runner from cfg. recorder may be nil to disable run
// history.
func NewRunner(cfg *config.Config, logger *slog.Logger, recorder Recorder) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("pairjob: config is required")
	}
	format, err := subtitles.ParseFormat(cfg.Tracks.OutputFormat)
	if err != nil {
		return nil, fmt.Errorf("output format: %w", err)
	}

	var corrector *subtitles.Corrector
	if cfg.Corrections.Enabled {
		entries, err := cfg.CorrectionEntries()
		if err != nil {
			return nil, err
		}
		corrector = subtitles.NewCorrector(entries)
	}

	return &Runner{
		tracks: cfg.Tracks,
		clean: subtitles.CleanOptions{
			NonDialogueKeywords: append([]string(nil), cfg.Cleaning.NonDialogueKeywords...),
			StripAnnotations:    cfg.Cleaning.StripAnnotations,
			StripForbidden:      cfg.Cleaning.StripForbidden,
			DropAdvertisements:  cfg.Cleaning.DropAdvertisements,
		},
		align: alignment.Options{
			GapTolerance:     cfg.Sync.GapToleranceSeconds,
			MaxGroupDuration: cfg.Sync.MaxGroupDurationSeconds,
		},
		format:    format,
		corrector: corrector,
		workers:   max(cfg.Batch.Workers, 1),
		keepRuns:  cfg.Batch.HistoryKeepRuns,
		recorder:  recorder,
		logger:    logging.NewComponentLogger(logger, "pairjob"),
		now:       time.Now,
	}, nil
}

// RunPair parses both tracks of spec, synchronizes them, and writes the
// output files. When synchronization yields no pairs nothing is written and
// the returned error wraps ErrNoPairs.
func (r *Runner) RunPair(ctx context.Context, spec Spec) (Outcome, error) {
	started := r.now()
	outcome := Outcome{Name: spec.Name}
	if err := ctx.Err(); err != nil {
		return outcome, &Error{Kind: KindCanceled, Op: "sync", Path: spec.Name, Err: err}
	}
	logger := logging.WithContext(logging.WithPair(ctx, spec.Name), r.logger)

	primary, primaryStats, err := r.parse(spec.PrimaryPath)
	if err != nil {
		return outcome, err
	}
	secondary, secondaryStats, err := r.parse(spec.SecondaryPath)
	if err != nil {
		return outcome, err
	}
	outcome.PrimaryCues = len(primary)
	outcome.SecondaryCues = len(secondary)
	outcome.PrimaryStats = primaryStats
	outcome.SecondaryStats = secondaryStats
	r.warnParseStats(logger, spec.PrimaryPath, primaryStats)
	r.warnParseStats(logger, spec.SecondaryPath, secondaryStats)

	result := alignment.Run(primary, secondary, r.align)
	outcome.Pairs = len(result.Pairs)
	outcome.UnmatchedPrimary = len(result.UnmatchedPrimary)
	outcome.UnmatchedSecondary = len(result.UnmatchedSecondary)
	outcome.Duplicates = result.Duplicates
	outcome.Passes = result.Passes
	logger.Debug("tracks aligned",
		logging.Int("primary_cues", outcome.PrimaryCues),
		logging.Int("secondary_cues", outcome.SecondaryCues),
		logging.Int("passes", result.Passes),
		logging.Int("duplicates", result.Duplicates),
	)

	if len(result.Pairs) == 0 {
		outcome.Duration = r.now().Sub(started)
		return outcome, &Error{Kind: KindNoPairs, Op: "sync", Path: spec.Name, Err: ErrNoPairs}
	}

	outputs, err := r.write(spec, result.Pairs)
	if err != nil {
		return outcome, err
	}
	outcome.Outputs = outputs
	outcome.Duration = r.now().Sub(started)

	logger.Info("pair synchronized",
		logging.Int("pairs", outcome.Pairs),
		logging.Int("unmatched_primary", outcome.UnmatchedPrimary),
		logging.Int("unmatched_secondary", outcome.UnmatchedSecondary),
		logging.Duration("duration", outcome.Duration),
	)
	return outcome, nil
}

func (r *Runner) parse(path string) (cue.Track, subtitles.ParseStats, error) {
	track, stats, err := subtitles.ParseFile(path, r.clean)
	if err == nil {
		return track, stats, nil
	}
	kind := KindParse
	if errors.Is(err, fs.ErrNotExist) {
		kind = KindNotFound
	}
	return nil, stats, &Error{Kind: kind, Op: "read", Path: path, Err: err}
}

func (r *Runner) warnParseStats(logger *slog.Logger, path string, stats subtitles.ParseStats) {
	if stats.MalformedTimestamps == 0 && stats.Inverted == 0 {
		return
	}
	logging.WarnWithContext(logger, "track has unreadable cue timings", "malformed_timestamps",
		logging.String("file", filepath.Base(path)),
		logging.Int("malformed_timestamps", stats.MalformedTimestamps),
		logging.Int("inverted_cues", stats.Inverted),
		logging.String(logging.FieldErrorHint, "check the timing lines of the source file"),
		logging.String(logging.FieldImpact, "affected cues were read as 00:00:00.000 or dropped"),
	)
}

// OutputPaths returns the files RunPair writes for spec, in write order.
func (r *Runner) OutputPaths(spec Spec) []string {
	paths := []string{
		r.outputPath(spec, r.tracks.PrimaryLanguage),
		r.outputPath(spec, r.tracks.SecondaryLanguage),
	}
	if r.tracks.WriteDual {
		paths = append(paths, r.outputPath(spec, "dual"))
	}
	return paths
}

func (r *Runner) outputPath(spec Spec, label string) string {
	name := spec.Name + "_" + label
	if r.tracks.OutputSuffix != "" {
		name += "_" + r.tracks.OutputSuffix
	}
	return filepath.Join(spec.OutputDir, name+r.format.Extension())
}

func (r *Runner) write(spec Spec, pairs []cue.Pair) ([]string, error) {
	paths := r.OutputPaths(spec)
	for _, path := range paths {
		if sameFile(path, spec.PrimaryPath) || sameFile(path, spec.SecondaryPath) {
			return nil, &Error{Kind: KindWrite, Op: "write", Path: path, Err: errors.New("output would overwrite an input track")}
		}
	}

	var staged fileutil.Staged
	staged.Add(paths[0], subtitles.RenderTrack(r.format, pairs, subtitles.SidePrimary, nil))
	staged.Add(paths[1], subtitles.RenderTrack(r.format, pairs, subtitles.SideSecondary, r.corrector))
	if len(paths) > 2 {
		staged.Add(paths[2], subtitles.RenderDual(r.format, pairs, r.corrector))
	}
	if err := staged.Commit(0o644); err != nil {
		return nil, &Error{Kind: KindWrite, Op: "write", Path: spec.OutputDir, Err: err}
	}
	return paths, nil
}

func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
