package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"VixLens/internal/calculator"
	"VixLens/internal/model"
)

// MockFetcher returns fixed in-memory series for development and testing.
type MockFetcher struct {
	Series map[string]model.PriceSeries
	Err    error
	Calls  []string
}

func (m *MockFetcher) Name() string { return "mock" }

// FetchCloses returns the stored series for symbol trimmed to [start, end).
func (m *MockFetcher) FetchCloses(_ context.Context, symbol string, start, end time.Time) (model.PriceSeries, error) {
	m.Calls = append(m.Calls, symbol)
	if m.Err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: %s: %w", ErrFetch, symbol, m.Err)
	}
	s, ok := m.Series[symbol]
	if !ok {
		return model.PriceSeries{}, fmt.Errorf("%w: %s: unknown symbol", ErrFetch, symbol)
	}
	out := model.PriceSeries{Symbol: symbol, FetchedAt: time.Now()}
	for _, p := range s.Points {
		if !p.Date.Before(start) && p.Date.Before(end) {
			out.Points = append(out.Points, p)
		}
	}
	return out, nil
}

// Request describes one return-versus-volatility analysis.
type Request struct {
	EquitySymbol     string
	VolatilitySymbol string
	Start            time.Time
	End              time.Time
	Period           int
	Bins             calculator.BinOptions
}

// Analysis carries every stage of a completed run.
type Analysis struct {
	Request   Request
	Equity    model.PriceSeries
	Returns   []model.ReturnRecord
	Aligned   []model.ReturnRecord
	Missing   []time.Time
	Buckets   []model.Bucket
	Summaries []model.BucketSummary
	Unbinned  int
}

// Collector orchestrates fetching, return computation, alignment and binning.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect runs the full pipeline for req.
func (c *Collector) Collect(ctx context.Context, req Request) (*Analysis, error) {
	equity, err := c.Fetcher.FetchCloses(ctx, req.EquitySymbol, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	log.Info().Str("symbol", req.EquitySymbol).Int("prices", equity.Len()).Str("source", c.Fetcher.Name()).Msg("fetched equity prices")

	returns, err := calculator.ComputeReturns(equity, req.Period)
	if err != nil {
		return nil, fmt.Errorf("compute returns: %w", err)
	}

	// The volatility range ends one day after the last return date so the
	// exclusive upper bound still covers it.
	first, last := returns[0].Date, returns[len(returns)-1].Date
	levels, err := c.Fetcher.FetchCloses(ctx, req.VolatilitySymbol, first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	log.Info().Str("symbol", req.VolatilitySymbol).Int("prices", levels.Len()).Msg("fetched volatility levels")

	aligned, missing := calculator.Align(returns, levels)
	for _, d := range missing {
		log.Warn().Str("date", d.Format(model.DateLayout)).Str("symbol", req.VolatilitySymbol).Msg("volatility level not found")
	}

	buckets, err := calculator.Bin(aligned, req.Bins)
	if err != nil {
		return nil, fmt.Errorf("bin returns: %w", err)
	}
	unbinned := len(aligned) - calculator.Binned(buckets)
	if unbinned > 0 {
		log.Debug().Int("pairs", unbinned).Msg("pairs at the top edge fell in no bucket")
	}

	return &Analysis{
		Request:   req,
		Equity:    equity,
		Returns:   returns,
		Aligned:   aligned,
		Missing:   missing,
		Buckets:   buckets,
		Summaries: calculator.SummarizeAll(buckets),
		Unbinned:  unbinned,
	}, nil
}
