package utils

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// StartOfDay returns local midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// RelativeTime renders t relative to now, e.g. "3 hours ago".
func RelativeTime(t, now time.Time) string {
	if now.Sub(t) < time.Minute && now.Sub(t) > -time.Minute {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatDelta renders an entry value with an explicit sign.
func FormatDelta(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

// FormatCount renders a total with thousands separators.
func FormatCount(v int) string {
	return humanize.Comma(int64(v))
}
