package calculator

import (
	"slices"

	"gonum.org/v1/gonum/stat"

	"VixLens/internal/model"
)

// Summarize computes descriptive statistics of a bucket's returns. An empty
// bucket yields a zero summary.
func Summarize(b model.Bucket) model.BucketSummary {
	if len(b.Returns) == 0 {
		return model.BucketSummary{}
	}
	sorted := slices.Clone(b.Returns)
	slices.Sort(sorted)

	s := model.BucketSummary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// SummarizeAll summarizes every bucket in order.
func SummarizeAll(buckets []model.Bucket) []model.BucketSummary {
	out := make([]model.BucketSummary, len(buckets))
	for i, b := range buckets {
		out[i] = Summarize(b)
	}
	return out
}
