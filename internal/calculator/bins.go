package calculator

import (
	"errors"
	"math"

	"VixLens/internal/model"
)

var ErrNoData = errors.New("no aligned records to bin")

// BinOptions tunes Bin. A zero value uses the cube-root rule and leaves the
// top edge open.
type BinOptions struct {
	// Count overrides floor(cbrt(N)) when positive.
	Count int
	// CloseFinal makes the last bucket include the maximum level.
	CloseFinal bool
}

// BucketCount is the cube-root rule floor(N^(1/3)).
func BucketCount(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Floor(math.Cbrt(float64(n))))
	// Cbrt may land a hair off on perfect cubes.
	for (r+1)*(r+1)*(r+1) <= n {
		r++
	}
	for r*r*r > n {
		r--
	}
	return r
}

// Bin splits [min, max] of the record levels into equal-width half-open
// buckets and files each return under the first bucket holding its level.
// Unless CloseFinal is set, records at exactly the maximum level land in no
// bucket.
func Bin(records []model.ReturnRecord, opts BinOptions) ([]model.Bucket, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	bins := opts.Count
	if bins <= 0 {
		bins = BucketCount(len(records))
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		lo = math.Min(lo, r.Level)
		hi = math.Max(hi, r.Level)
	}
	step := (hi - lo) / float64(bins)

	buckets := make([]model.Bucket, bins)
	for k := range buckets {
		buckets[k] = model.Bucket{
			Low:  lo + step*float64(k),
			High: lo + step*float64(k+1),
		}
	}
	if opts.CloseFinal {
		buckets[bins-1].High = hi
		buckets[bins-1].Closed = true
	}

	for _, r := range records {
		for k := range buckets {
			if buckets[k].Contains(r.Level) {
				buckets[k].Returns = append(buckets[k].Returns, r.PercentChange)
				break
			}
		}
	}
	return buckets, nil
}

// Binned counts the returns filed across all buckets.
func Binned(buckets []model.Bucket) int {
	n := 0
	for _, b := range buckets {
		n += len(b.Returns)
	}
	return n
}
