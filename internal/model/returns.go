package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Trading days per lookback window.
const (
	TradingYear    = 252
	TradingQuarter = 63
	TradingMonth   = 21
	TradingWeek    = 5
)

var periodNames = map[string]int{
	"year":    TradingYear,
	"quarter": TradingQuarter,
	"month":   TradingMonth,
	"week":    TradingWeek,
}

// ParsePeriod accepts a period name (year, quarter, month, week) or a
// positive number of trading days.
func ParsePeriod(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, ok := periodNames[s]; ok {
		return n, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("unknown period %q", s)
	}
	return n, nil
}

// PeriodLabel renders a trading-day count for chart labels.
func PeriodLabel(days int) string {
	switch days {
	case TradingYear:
		return "1 year"
	case TradingQuarter:
		return "3 months"
	case TradingMonth:
		return "1 month"
	case TradingWeek:
		return "1 week"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// ReturnRecord is a trailing return dated by the start of its window.
// Level is only meaningful once Aligned is set.
type ReturnRecord struct {
	Date          time.Time
	PercentChange float64
	Level         float64
	Aligned       bool
}
