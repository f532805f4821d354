package history

import (
	"database/sql"
	"fmt"
	"time"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(scanner rowScanner) (Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&startedRaw,
		&finishedRaw,
		&run.InputDir,
		&run.OutputDir,
		&run.Total,
		&run.Succeeded,
		&run.Failed,
		&run.Skipped,
	); err != nil {
		return Run{}, err
	}

	started, err := parseTime(startedRaw)
	if err != nil {
		return Run{}, fmt.Errorf("run %s started_at: %w", run.ID, err)
	}
	run.StartedAt = started
	if finishedRaw.Valid && finishedRaw.String != "" {
		finished, err := parseTime(finishedRaw.String)
		if err != nil {
			return Run{}, fmt.Errorf("run %s finished_at: %w", run.ID, err)
		}
		run.FinishedAt = &finished
	}
	return run, nil
}

func scanPair(scanner rowScanner) (PairRecord, error) {
	var (
		record      PairRecord
		status      string
		durationMS  int64
		recordedRaw string
	)
	if err := scanner.Scan(
		&record.RunID,
		&record.Name,
		&record.PrimaryPath,
		&record.SecondaryPath,
		&status,
		&record.Pairs,
		&record.UnmatchedPrimary,
		&record.UnmatchedSecondary,
		&record.Duplicates,
		&record.ErrorKind,
		&record.ErrorMessage,
		&durationMS,
		&recordedRaw,
	); err != nil {
		return PairRecord{}, err
	}
	record.Status = PairStatus(status)
	record.Duration = time.Duration(durationMS) * time.Millisecond
	recorded, err := parseTime(recordedRaw)
	if err != nil {
		return PairRecord{}, fmt.Errorf("pair %s recorded_at: %w", record.Name, err)
	}
	record.RecordedAt = recorded
	return record, nil
}

// timeLayout is fixed width so text order in SQLite matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
