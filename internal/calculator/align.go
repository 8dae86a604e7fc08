package calculator

import (
	"time"

	"VixLens/internal/model"
)

// Align attaches the level from levels to every record whose date matches
// exactly. Records without a match are dropped and their dates returned in
// missing. The input slice is left untouched.
func Align(records []model.ReturnRecord, levels model.PriceSeries) (aligned []model.ReturnRecord, missing []time.Time) {
	byDate := levels.ByDate()
	aligned = make([]model.ReturnRecord, 0, len(records))
	for _, r := range records {
		level, ok := byDate[r.Date]
		if !ok {
			missing = append(missing, r.Date)
			continue
		}
		r.Level = level
		r.Aligned = true
		aligned = append(aligned, r)
	}
	return aligned, missing
}
