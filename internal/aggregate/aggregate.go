// Package aggregate derives totals, period deltas, chart series and summary
// statistics from a counter and its entries. Every function is pure: the
// current instant is always passed in, and local time means now.Location().
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
)

// Period is a calendar window used for period-scoped deltas.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Periods lists every Period in display order.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// TotalAsOf returns the running total of c including every entry at or before
// cutoff. A nil cutoff includes all entries. The result may be negative.
func TotalAsOf(c models.Counter, entries []models.Entry, cutoff *time.Time) int {
	total := c.InitialCount
	for _, e := range entries {
		if e.CounterID != c.ID {
			continue
		}
		if cutoff != nil && e.Timestamp.After(*cutoff) {
			continue
		}
		total += e.Value
	}
	return total
}

// Total is the all-time running total of c.
func Total(c models.Counter, entries []models.Entry) int {
	return TotalAsOf(c, entries, nil)
}

// TotalInWindow sums the entries of c recorded at or after windowStart.
// It is a delta within the period and never includes c.InitialCount.
func TotalInWindow(c models.Counter, entries []models.Entry, windowStart time.Time) int {
	sum := 0
	for _, e := range entries {
		if e.CounterID != c.ID || e.Timestamp.Before(windowStart) {
			continue
		}
		sum += e.Value
	}
	return sum
}

// WindowStart returns the local-time start of the period containing now:
// midnight today, midnight of the most recent Sunday, the 1st of the month or
// January 1st.
func WindowStart(p Period, now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	switch p {
	case PeriodWeek:
		return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, loc)
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case PeriodYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}

// PeriodTotals computes TotalInWindow for every Period.
func PeriodTotals(c models.Counter, entries []models.Entry, now time.Time) map[Period]int {
	totals := make(map[Period]int, len(Periods))
	for _, p := range Periods {
		totals[p] = TotalInWindow(c, entries, WindowStart(p, now))
	}
	return totals
}

// DailyAverage divides the current total by the number of days spanned by the
// entry timestamps and now, rounded up and at least one. It is 0 when c has
// no entries. The result keeps full precision; see FormatAverage.
func DailyAverage(c models.Counter, entries []models.Entry, now time.Time) float64 {
	minMs := now.UnixMilli()
	maxMs := minMs
	seen := false
	for _, e := range entries {
		if e.CounterID != c.ID {
			continue
		}
		seen = true
		ts := e.Timestamp.UnixMilli()
		if ts < minMs {
			minMs = ts
		}
		if ts > maxMs {
			maxMs = ts
		}
	}
	if !seen {
		return 0
	}

	days := math.Ceil(float64(maxMs-minMs) / constants.MillisPerDay)
	if days < 1 {
		days = 1
	}
	return float64(Total(c, entries)) / days
}

// FormatAverage renders a daily average with one fractional digit.
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

// PeakDay returns the best single calendar day in loc of forward progress:
// entries are floored at zero, summed per day, and the largest sum wins.
func PeakDay(entries []models.Entry, loc *time.Location) int {
	type day struct {
		y int
		m time.Month
		d int
	}
	sums := make(map[day]int)
	for _, e := range entries {
		y, m, d := e.Timestamp.In(loc).Date()
		sums[day{y, m, d}] += max(0, e.Value)
	}

	peak := 0
	for _, v := range sums {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Progress describes how far a total is towards a goal.
type Progress struct {
	Total   int
	Goal    int
	Percent float64 // clamped to [0, 100]
	Reached bool
}

// GoalProgress reports progress of total towards goal. ok is false when there
// is no goal to measure against.
func GoalProgress(total int, goal *int) (Progress, bool) {
	if goal == nil || *goal <= 0 {
		return Progress{}, false
	}
	pct := float64(total) * 100 / float64(*goal)
	pct = math.Min(100, math.Max(0, pct))
	return Progress{
		Total:   total,
		Goal:    *goal,
		Percent: pct,
		Reached: total >= *goal,
	}, true
}

// Recent returns at most n entries, newest first. The input is not modified.
func Recent(entries []models.Entry, n int) []models.Entry {
	sorted := make([]models.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
