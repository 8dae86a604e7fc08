package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VixLens/internal/model"
)

func TestAlign_DropsMissingDates(t *testing.T) {
	records, err := ComputeReturns(makeSeries("^GSPC", 100, 101, 102, 103, 104, 105), 1)
	require.NoError(t, err)

	levels := makeSeries("^VIX", 12, 13, 14, 15, 16)
	// Remove day 2 and day 4 so two records lose their level.
	levels.Points = []model.PricePoint{levels.Points[0], levels.Points[1], levels.Points[3]}

	aligned, missing := Align(records, levels)
	require.Len(t, aligned, 3)
	assert.Equal(t, []time.Time{day0.AddDate(0, 0, 2), day0.AddDate(0, 0, 4)}, missing)

	assert.Equal(t, day0, aligned[0].Date)
	assert.Equal(t, 12.0, aligned[0].Level)
	assert.Equal(t, day0.AddDate(0, 0, 1), aligned[1].Date)
	assert.Equal(t, 13.0, aligned[1].Level)
	assert.Equal(t, day0.AddDate(0, 0, 3), aligned[2].Date)
	assert.Equal(t, 15.0, aligned[2].Level)
	for _, r := range aligned {
		assert.True(t, r.Aligned)
	}
}

func TestAlign_DoesNotMutateInput(t *testing.T) {
	records, err := ComputeReturns(makeSeries("^GSPC", 100, 101, 102), 1)
	require.NoError(t, err)
	before := append([]model.ReturnRecord(nil), records...)

	_, _ = Align(records, makeSeries("^VIX", 20))
	assert.Equal(t, before, records)
}

func TestAlign_ConsecutiveMissing(t *testing.T) {
	records, err := ComputeReturns(makeSeries("^GSPC", 100, 100, 100, 100, 100), 1)
	require.NoError(t, err)

	levels := makeSeries("^VIX", 20, 21, 22, 23)
	levels.Points = levels.Points[3:]

	aligned, missing := Align(records, levels)
	require.Len(t, aligned, 1)
	assert.Len(t, missing, 3)
	assert.Equal(t, day0.AddDate(0, 0, 3), aligned[0].Date)
}

func TestAlign_Idempotent(t *testing.T) {
	records, err := ComputeReturns(makeSeries("^GSPC", 100, 98, 103, 107, 101), 2)
	require.NoError(t, err)
	levels := makeSeries("^VIX", 18, 25, 31)

	once, _ := Align(records, levels)
	twice, missing := Align(once, levels)
	assert.Empty(t, missing)
	assert.Equal(t, once, twice)
}
