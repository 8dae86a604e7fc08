package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VixLens/internal/model"
)

func TestHistogramBins(t *testing.T) {
	assert.Equal(t, 1, HistogramBins(0))
	assert.Equal(t, 1, HistogramBins(3))
	assert.Equal(t, 2, HistogramBins(4))
	assert.Equal(t, 9, HistogramBins(99))
	assert.Equal(t, 10, HistogramBins(100))
}

func TestRenderer_Scatter(t *testing.T) {
	r := NewRenderer(filepath.Join(t.TempDir(), "out"), 4, 3)
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	records := []model.ReturnRecord{
		{Date: d, PercentChange: 3.1, Level: 13.2, Aligned: true},
		{Date: d.AddDate(0, 0, 1), PercentChange: -4.5, Level: 28.7, Aligned: true},
		{Date: d.AddDate(0, 0, 2), PercentChange: 0.2, Level: 17.0, Aligned: true},
	}

	path, err := r.Scatter(records, ScatterLabels{Equity: "^GSPC", Volatility: "^VIX", Period: model.TradingQuarter})
	require.NoError(t, err)
	assert.Equal(t, "scatter_gspc_vix_63.png", filepath.Base(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderer_Histogram(t *testing.T) {
	r := NewRenderer(t.TempDir(), 4, 3)

	path, err := r.Histogram(2, model.Bucket{Low: 10, High: 15, Returns: []float64{-2, 1, 1.5, 3, 4}})
	require.NoError(t, err)
	assert.Equal(t, "bucket_02.png", filepath.Base(path))
	_, err = os.Stat(path)
	assert.NoError(t, err)

	_, err = r.Histogram(0, model.Bucket{Low: 10, High: 15})
	assert.ErrorIs(t, err, ErrEmptyBucket)
}

func TestDisplaySymbol(t *testing.T) {
	assert.Equal(t, "SPX", displaySymbol("^GSPC"))
	assert.Equal(t, "VIX", displaySymbol("^VIX"))
	assert.Equal(t, "AAPL", displaySymbol("AAPL"))
}
