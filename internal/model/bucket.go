package model

import "fmt"

// Bucket groups returns whose volatility level falls in [Low, High).
// A closed bucket also accepts Level == High.
type Bucket struct {
	Low     float64
	High    float64
	Closed  bool
	Returns []float64
}

// Contains reports whether level lies inside the bucket bounds.
func (b Bucket) Contains(level float64) bool {
	if level < b.Low {
		return false
	}
	if b.Closed {
		return level <= b.High
	}
	return level < b.High
}

func (b Bucket) String() string {
	closing := ")"
	if b.Closed {
		closing = "]"
	}
	return fmt.Sprintf("[%.2f, %.2f%s", b.Low, b.High, closing)
}

// BucketSummary holds descriptive statistics of a bucket's returns.
type BucketSummary struct {
	Count  int
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}
