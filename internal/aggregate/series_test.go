package aggregate

import (
	"slices"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/models"
)

func collect(c models.Counter, entries []models.Entry, r Range) []Point {
	return slices.Collect(Series(c, entries, r, testNow))
}

func TestSeries_Day(t *testing.T) {
	c, entries := scenarioCounter()
	points := collect(c, entries, RangeDay)

	if len(points) != 9 {
		t.Fatalf("day series has %d points, want 9", len(points))
	}
	if !points[8].At.Equal(testNow) {
		t.Errorf("last point at %v, want now (%v)", points[8].At, testNow)
	}
	if !points[0].At.Equal(testNow.Add(-24 * time.Hour)) {
		t.Errorf("first point at %v, want 24h before now", points[0].At)
	}
	for i := 1; i < len(points); i++ {
		if gap := points[i].At.Sub(points[i-1].At); gap != 3*time.Hour {
			t.Errorf("gap between points %d and %d = %v, want 3h", i-1, i, gap)
		}
	}

	if points[0].Label != "15:00" {
		t.Errorf("first label = %q, want %q", points[0].Label, "15:00")
	}
	// 12 Mar 15:30: +3 and -2 have landed.
	if points[0].Total != 6 {
		t.Errorf("first total = %d, want 6", points[0].Total)
	}
	// 13 Mar 09:30 is before the +10 entry, 12:30 is after it.
	if points[6].Total != 6 || points[7].Total != 16 {
		t.Errorf("totals around 10:00 = %d, %d, want 6, 16", points[6].Total, points[7].Total)
	}
}

func TestSeries_Week(t *testing.T) {
	c, entries := scenarioCounter()
	points := collect(c, entries, RangeWeek)

	if len(points) != 7 {
		t.Fatalf("week series has %d points, want 7", len(points))
	}

	wantLabels := []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}
	wantTotals := []int{5, 5, 5, 5, 8, 6, 16}
	for i, p := range points {
		if p.Label != wantLabels[i] {
			t.Errorf("point %d label = %q, want %q", i, p.Label, wantLabels[i])
		}
		if p.Total != wantTotals[i] {
			t.Errorf("point %d total = %d, want %d", i, p.Total, wantTotals[i])
		}
		if p.At.Hour() != 23 || p.At.Minute() != 59 || p.At.Second() != 59 || p.At.Nanosecond() != int(999*time.Millisecond) {
			t.Errorf("point %d sampled at %v, want 23:59:59.999", i, p.At)
		}
	}
}

func TestSeries_WeekIncludesEndOfDayEntries(t *testing.T) {
	c := models.Counter{ID: "c1"}
	entries := []models.Entry{
		entry("late", "c1", time.Date(2024, time.March, 12, 23, 59, 59, int(999*time.Millisecond), testLoc), 1),
	}
	points := collect(c, entries, RangeWeek)
	if points[5].Total != 1 {
		t.Errorf("Tuesday total = %d, want the 23:59:59.999 entry counted", points[5].Total)
	}
	if points[4].Total != 0 {
		t.Errorf("Monday total = %d, want 0", points[4].Total)
	}
}

func TestSeries_Month(t *testing.T) {
	c, entries := scenarioCounter()
	points := collect(c, entries, RangeMonth)

	if len(points) != 10 {
		t.Fatalf("month series has %d points, want 10", len(points))
	}

	first := time.Date(2024, time.February, 13, 15, 30, 0, 0, testLoc)
	if !points[0].At.Equal(first) {
		t.Errorf("first point at %v, want %v", points[0].At, first)
	}
	if points[0].Label != "2/13" {
		t.Errorf("first label = %q, want %q", points[0].Label, "2/13")
	}

	last := points[len(points)-1]
	if last.Label != "3/11" {
		t.Errorf("last label = %q, want %q", last.Label, "3/11")
	}
	if last.Total != 8 {
		t.Errorf("last total = %d, want 8", last.Total)
	}
	for _, p := range points {
		if p.At.Hour() != 15 || p.At.Minute() != 30 {
			t.Errorf("point %s sampled at %v, want now's time of day", p.Label, p.At)
		}
	}
}

func TestSeries_Restartable(t *testing.T) {
	c, entries := scenarioCounter()
	seq := Series(c, entries, RangeWeek, testNow)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Error("ranging over the series twice produced different points")
	}
}

func TestSeries_StopsEarly(t *testing.T) {
	c, entries := scenarioCounter()
	n := 0
	for range Series(c, entries, RangeMonth, testNow) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("consumed %d points, want 3", n)
	}
}

func TestSeries_NotMonotonic(t *testing.T) {
	c := models.Counter{ID: "c1", InitialCount: 10}
	entries := []models.Entry{
		entry("e1", "c1", at(time.March, 10, 12, 0), 5),
		entry("e2", "c1", at(time.March, 12, 12, 0), -8),
	}
	points := collect(c, entries, RangeWeek)
	if points[3].Total != 15 || points[5].Total != 7 {
		t.Errorf("totals = %d then %d, want 15 then 7", points[3].Total, points[5].Total)
	}
}

func TestParseRange(t *testing.T) {
	for _, s := range []string{"day", "Week", " MONTH "} {
		if _, err := ParseRange(s); err != nil {
			t.Errorf("ParseRange(%q) returned error: %v", s, err)
		}
	}
	if _, err := ParseRange("year"); err == nil {
		t.Error("ParseRange(\"year\") should return an error")
	}
}
