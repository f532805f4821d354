package pairjob

import (
	"context"
	"time"

	"dualsub/internal/history"
)

// Recorder persists batch runs. *history.Store satisfies it.
type Recorder interface {
	BeginRun(ctx context.Context, run history.Run) (history.Run, error)
	RecordPair(ctx context.Context, record history.PairRecord) error
	FinishRun(ctx context.Context, runID string, finishedAt time.Time) (history.Run, error)
	Prune(ctx context.Context, keep int) (int64, error)
}
