package collector

import (
	"context"
	"errors"
	"time"

	"VixLens/internal/model"
)

// ErrFetch marks a failure to obtain a price series from a source.
var ErrFetch = errors.New("fetch prices")

// Fetcher defines the interface for fetching daily closes.
// The range is [start, end): end itself is not included.
type Fetcher interface {
	FetchCloses(ctx context.Context, symbol string, start, end time.Time) (model.PriceSeries, error)
	Name() string
}
