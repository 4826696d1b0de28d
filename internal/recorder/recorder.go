package recorder

import "DispositionSentinel/internal/model"

// RunRecord holds the audit data for one evaluation run.
type RunRecord struct {
	RunID            string // assigned by the recorder when empty
	SourceFile       string
	RecordCount      int
	AttentionCount   int
	DispositionCount int
	Dispositions     []model.DispositionDay
}

// Recorder persists evaluation runs for later review.
type Recorder interface {
	RecordRun(run *RunRecord) error
	Close() error
}
