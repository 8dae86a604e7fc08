package calculator

import (
	"errors"
	"fmt"

	"VixLens/internal/model"
)

var (
	ErrInvalidPeriod    = errors.New("period must be positive")
	ErrInsufficientData = errors.New("not enough prices for period")
	ErrNonPositivePrice = errors.New("start price must be positive")
)

// ComputeReturns returns one record per index i in [0, len-period) holding the
// percent change from price i to price i+period, dated by price i.
func ComputeReturns(series model.PriceSeries, period int) ([]model.ReturnRecord, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	n := series.Len()
	if n <= period {
		return nil, fmt.Errorf("%w: %s has %d prices, period %d", ErrInsufficientData, series.Symbol, n, period)
	}

	records := make([]model.ReturnRecord, 0, n-period)
	for i := 0; i < n-period; i++ {
		start := series.Points[i]
		end := series.Points[i+period]
		if start.Close <= 0 {
			return nil, fmt.Errorf("%w: %s on %s", ErrNonPositivePrice, series.Symbol, start.Date.Format(model.DateLayout))
		}
		records = append(records, model.ReturnRecord{
			Date:          start.Date,
			PercentChange: (end.Close - start.Close) / start.Close * 100,
		})
	}
	return records, nil
}
