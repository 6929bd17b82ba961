package recorder

import "time"

// Snapshot is one symbol's outcome in a run.
type Snapshot struct {
	Group     string
	Name      string
	Symbol    string
	Value     float64
	DailyPct  float64
	WeeklyPct float64
	Volume    int64
	Low52w    float64
	High52w   float64
	OK        bool
	Note      string // failure reason when OK is false
}

// RunRecord holds one complete report run.
type RunRecord struct {
	StartedAt time.Time
	Delivered bool
	Failures  int
	Report    string
	Snapshots []Snapshot
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(run *RunRecord) error
	Close() error
}
