package model

import "time"

// PricePoint is one daily close keyed by its calendar date.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds the daily closes of one symbol in ascending date order.
type PriceSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of trading days in the series.
func (s PriceSeries) Len() int { return len(s.Points) }

// First returns the earliest date, or the zero time for an empty series.
func (s PriceSeries) First() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[0].Date
}

// Last returns the latest date, or the zero time for an empty series.
func (s PriceSeries) Last() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Date
}

// ByDate indexes closes by calendar date.
func (s PriceSeries) ByDate() map[time.Time]float64 {
	m := make(map[time.Time]float64, len(s.Points))
	for _, p := range s.Points {
		m[p.Date] = p.Close
	}
	return m
}

// DateOf truncates t to a UTC calendar date so series from different
// sources share map keys.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateLayout is the calendar date format used in config, CSV and logs.
const DateLayout = "2006-01-02"
