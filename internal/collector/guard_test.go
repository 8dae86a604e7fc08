package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardedFetcher_PassesThrough(t *testing.T) {
	mock := &MockFetcher{Series: seriesFixture()}
	g := NewGuardedFetcher(mock, 0, 3)

	series, err := g.FetchCloses(context.Background(), "^VIX", day(0), day(30))
	require.NoError(t, err)
	assert.NotEmpty(t, series.Points)
	assert.Equal(t, "mock", g.Name())
}

func TestGuardedFetcher_TripsAfterFailures(t *testing.T) {
	mock := &MockFetcher{Err: errors.New("connection reset")}
	g := NewGuardedFetcher(mock, 0, 2)

	for i := 0; i < 2; i++ {
		_, err := g.FetchCloses(context.Background(), "^VIX", day(0), day(1))
		require.ErrorIs(t, err, ErrFetch)
	}
	_, err := g.FetchCloses(context.Background(), "^VIX", day(0), day(1))
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, mock.Calls, 2)
}

func TestGuardedFetcher_CancelledContext(t *testing.T) {
	g := NewGuardedFetcher(&MockFetcher{Series: seriesFixture()}, 0.001, 0)
	// The first token is free; the second would wait far longer than the deadline.
	_, err := g.FetchCloses(context.Background(), "^VIX", day(0), day(1))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = g.FetchCloses(ctx, "^VIX", day(0), day(1))
	assert.ErrorIs(t, err, ErrFetch)
}
