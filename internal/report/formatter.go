package report

import (
	"fmt"
	"strings"

	"VixLens/internal/collector"
	"VixLens/internal/model"
)

// FormatRunHeader summarizes the inputs and record counts of an analysis.
func FormatRunHeader(a *collector.Analysis) string {
	var b strings.Builder
	req := a.Request
	b.WriteString(fmt.Sprintf("%s vs %s | %s returns | %s to %s\n",
		req.EquitySymbol, req.VolatilitySymbol, model.PeriodLabel(req.Period),
		req.Start.Format(model.DateLayout), req.End.Format(model.DateLayout)))
	b.WriteString(fmt.Sprintf("Prices: %d  Returns: %d  Aligned: %d  Missing levels: %d\n",
		a.Equity.Len(), len(a.Returns), len(a.Aligned), len(a.Missing)))
	if a.Unbinned > 0 {
		b.WriteString(fmt.Sprintf("Outside every bucket: %d\n", a.Unbinned))
	}
	return b.String()
}

// FormatBucketTable lists each bucket with its statistics, one row per index.
func FormatBucketTable(buckets []model.Bucket, summaries []model.BucketSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%3s  %-18s %6s %8s %8s %8s\n", "#", "Level range", "Count", "Mean%", "StdDev", "Median%"))
	b.WriteString("  ─────────────────────────────────────────────────────────\n")
	for i, bucket := range buckets {
		var s model.BucketSummary
		if i < len(summaries) {
			s = summaries[i]
		}
		b.WriteString(fmt.Sprintf("%3d  %-18s %6d %+8.2f %8.2f %+8.2f\n",
			i, bucket.String(), len(bucket.Returns), s.Mean, s.StdDev, s.Median))
	}
	return b.String()
}
