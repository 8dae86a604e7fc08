package recorder

import (
	"time"

	"VixLens/internal/model"
)

// RunSnapshot holds everything persisted for one analysis run.
type RunSnapshot struct {
	EquitySymbol     string
	VolatilitySymbol string
	Period           int
	Start            time.Time
	End              time.Time
	Returns          int
	Missing          int
	Unbinned         int
	Aligned          []model.ReturnRecord
	Buckets          []model.Bucket
	Summaries        []model.BucketSummary
}

// Recorder persists analysis history.
type Recorder interface {
	RecordRun(snap *RunSnapshot) (int64, error)
	Close() error
}
