package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"VixLens/internal/model"
)

func TestSummarize(t *testing.T) {
	s := Summarize(model.Bucket{Returns: []float64{3, -1, 2, 4, 7}})
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 3.0, s.Mean, 1e-9)
	assert.InDelta(t, 3.0, s.Median, 1e-9)
	assert.Equal(t, -1.0, s.Min)
	assert.Equal(t, 7.0, s.Max)
	assert.InDelta(t, math.Sqrt(8.5), s.StdDev, 1e-9)
}

func TestSummarize_Edges(t *testing.T) {
	assert.Equal(t, model.BucketSummary{}, Summarize(model.Bucket{}))

	single := Summarize(model.Bucket{Returns: []float64{2.5}})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, 2.5, single.Mean)
	assert.Zero(t, single.StdDev)
}

func TestSummarizeAll(t *testing.T) {
	out := SummarizeAll([]model.Bucket{{Returns: []float64{1}}, {}, {Returns: []float64{1, 3}}})
	assert.Len(t, out, 3)
	assert.Equal(t, 0, out[1].Count)
	assert.InDelta(t, 2.0, out[2].Mean, 1e-9)
}
