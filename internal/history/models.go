package history

import "time"

// PairStatus captures how one pair in a run ended.
type PairStatus string

const (
	StatusSucceeded PairStatus = "succeeded"
	StatusFailed    PairStatus = "failed"
	// StatusSkipped marks a discovered track without a partner.
	StatusSkipped PairStatus = "skipped"
)

// Run is one batch invocation.
type Run struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	InputDir   string     `json:"input_dir"`
	OutputDir  string     `json:"output_dir"`
	Total      int        `json:"total"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
	Skipped    int        `json:"skipped"`
}

// Finished reports whether FinishRun has been called for the run.
func (r Run) Finished() bool {
	return r.FinishedAt != nil
}

// PairRecord is the stored outcome of one pair within a run.
type PairRecord struct {
	RunID              string        `json:"run_id"`
	Name               string        `json:"name"`
	PrimaryPath        string        `json:"primary_path"`
	SecondaryPath      string        `json:"secondary_path"`
	Status             PairStatus    `json:"status"`
	Pairs              int           `json:"pairs"`
	UnmatchedPrimary   int           `json:"unmatched_primary"`
	UnmatchedSecondary int           `json:"unmatched_secondary"`
	Duplicates         int           `json:"duplicates"`
	ErrorKind          string        `json:"error_kind,omitempty"`
	ErrorMessage       string        `json:"error_message,omitempty"`
	Duration           time.Duration `json:"duration"`
	RecordedAt         time.Time     `json:"recorded_at"`
}
