package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VixLens/internal/model"
)

func snapshotFixture() *RunSnapshot {
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return &RunSnapshot{
		EquitySymbol:     "^GSPC",
		VolatilitySymbol: "^VIX",
		Period:           model.TradingQuarter,
		Start:            d,
		End:              d.AddDate(1, 0, 0),
		Returns:          4,
		Missing:          1,
		Unbinned:         1,
		Aligned: []model.ReturnRecord{
			{Date: d, PercentChange: 2.5, Level: 13, Aligned: true},
			{Date: d.AddDate(0, 0, 1), PercentChange: -1.0, Level: 15, Aligned: true},
			{Date: d.AddDate(0, 0, 3), PercentChange: 0.5, Level: 19, Aligned: true},
		},
		Buckets: []model.Bucket{
			{Low: 13, High: 19, Returns: []float64{2.5, -1.0}},
		},
		Summaries: []model.BucketSummary{
			{Count: 2, Mean: 0.75, Median: -1.0, Min: -1.0, Max: 2.5},
		},
	}
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer rec.Close()

	id, err := rec.RecordRun(snapshotFixture())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	var aligned, missing int
	var equity string
	require.NoError(t, rec.db.QueryRow(`SELECT equity_symbol, aligned, missing FROM analysis_runs WHERE id = ?`, id).
		Scan(&equity, &aligned, &missing))
	assert.Equal(t, "^GSPC", equity)
	assert.Equal(t, 3, aligned)
	assert.Equal(t, 1, missing)

	var count int
	var mean float64
	require.NoError(t, rec.db.QueryRow(`SELECT size, mean FROM bucket_stats WHERE run_id = ? AND idx = 0`, id).
		Scan(&count, &mean))
	assert.Equal(t, 2, count)
	assert.Equal(t, 0.75, mean)

	var records int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM return_records WHERE run_id = ?`, id).Scan(&records))
	assert.Equal(t, 3, records)

	id2, err := rec.RecordRun(snapshotFixture())
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	_, err = rec.RecordRun(snapshotFixture())
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	rec, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()
	var runs int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM analysis_runs`).Scan(&runs))
	assert.Equal(t, 1, runs)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	id, err := rec.RecordRun(snapshotFixture())
	assert.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, rec.Close())
}
