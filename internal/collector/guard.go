package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"VixLens/internal/model"
)

// GuardedFetcher throttles an upstream Fetcher and stops calling it after
// repeated failures until the breaker timeout elapses.
type GuardedFetcher struct {
	next    Fetcher
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewGuardedFetcher wraps next. A non-positive rps disables throttling and a
// non-positive maxFailures disables the breaker trip.
func NewGuardedFetcher(next Fetcher, rps float64, maxFailures uint32) *GuardedFetcher {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	st := gobreaker.Settings{
		Name:    next.Name(),
		Timeout: time.Minute,
	}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return maxFailures > 0 && counts.ConsecutiveFailures >= maxFailures
	}
	return &GuardedFetcher{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

func (g *GuardedFetcher) Name() string { return g.next.Name() }

func (g *GuardedFetcher) FetchCloses(ctx context.Context, symbol string, start, end time.Time) (model.PriceSeries, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: %s: rate limit: %w", ErrFetch, symbol, err)
	}
	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.FetchCloses(ctx, symbol, start, end)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return model.PriceSeries{}, fmt.Errorf("%w: %s: %w", ErrFetch, symbol, err)
		}
		return model.PriceSeries{}, err
	}
	return out.(model.PriceSeries), nil
}
