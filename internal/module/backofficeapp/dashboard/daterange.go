package dashboard

import (
	"strings"
	"time"
)

const (
	RangeToday  = "today"
	RangeLast7  = "7d"
	RangeLast30 = "30d"
	RangeCustom = "custom"
)

// resolveDateRange maps a symbolic range keyword to concrete date bounds,
// evaluated against "today" in the given zone. An unrecognized keyword
// silently resolves to the today window; that degradation is intentional and
// never an error. For the custom range, missing bounds default to today-7
// and today respectively.
func resolveDateRange(keyword string, startDate, endDate *time.Time, loc *time.Location, now time.Time) DateRange {
	today := truncateToDate(now.In(loc))

	switch strings.ToLower(keyword) {
	case RangeToday:
		return DateRange{Start: today, End: today.AddDate(0, 0, 1)}
	case RangeLast7:
		return DateRange{Start: today.AddDate(0, 0, -6), End: today}
	case RangeLast30:
		return DateRange{Start: today.AddDate(0, 0, -29), End: today}
	case RangeCustom:
		start := today.AddDate(0, 0, -7)
		if startDate != nil {
			start = truncateToDate(startDate.In(loc))
		}

		end := today
		if endDate != nil {
			end = truncateToDate(endDate.In(loc))
		}

		return DateRange{Start: start, End: end}
	default:
		return DateRange{Start: today, End: today.AddDate(0, 0, 1)}
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
