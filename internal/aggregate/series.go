package aggregate

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/julianstephens/tally/internal/models"
)

// Range selects the bucket layout of a chart series.
type Range string

const (
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// Ranges lists every chart Range in display order.
var Ranges = []Range{RangeDay, RangeWeek, RangeMonth}

// ParseRange accepts a range name in any case.
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Ranges {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid range %q (expected day, week or month)", s)
}

// Point is one sample of a running-total series.
type Point struct {
	Label string
	At    time.Time
	Total int
}

const (
	dayPoints     = 9
	dayStep       = 3 * time.Hour
	weekPoints    = 7
	monthSpanDays = 29
	monthStepDays = 3
)

// Series yields running totals of c for charting, oldest first:
//   - RangeDay: 9 points 3 hours apart ending at now
//   - RangeWeek: the last 7 days, each sampled at 23:59:59.999 local time
//   - RangeMonth: every third day starting 29 days ago, at now's time of day
//
// The sequence is computed lazily and can be ranged over any number of times.
// With negative deltas the totals can go down as well as up.
func Series(c models.Counter, entries []models.Entry, r Range, now time.Time) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, at := range sampleTimes(r, now) {
			p := Point{
				Label: label(r, at),
				At:    at,
				Total: TotalAsOf(c, entries, &at),
			}
			if !yield(p) {
				return
			}
		}
	}
}

func sampleTimes(r Range, now time.Time) []time.Time {
	y, m, d := now.Date()
	loc := now.Location()

	var times []time.Time
	switch r {
	case RangeDay:
		for i := dayPoints - 1; i >= 0; i-- {
			times = append(times, now.Add(-time.Duration(i)*dayStep))
		}
	case RangeWeek:
		for i := weekPoints - 1; i >= 0; i-- {
			times = append(times, time.Date(y, m, d-i, 23, 59, 59, int(999*time.Millisecond), loc))
		}
	case RangeMonth:
		for i := monthSpanDays; i >= 0; i -= monthStepDays {
			times = append(times, now.AddDate(0, 0, -i))
		}
	}
	return times
}

func label(r Range, at time.Time) string {
	switch r {
	case RangeDay:
		return fmt.Sprintf("%d:00", at.Hour())
	case RangeWeek:
		return at.Format("Mon")
	default:
		return fmt.Sprintf("%d/%d", int(at.Month()), at.Day())
	}
}
