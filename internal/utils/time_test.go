package utils

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("test", -5*3600)
	in := time.Date(2024, time.March, 13, 15, 30, 12, 5, loc)
	got := StartOfDay(in)
	want := time.Date(2024, time.March, 13, 0, 0, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	loc := time.FixedZone("test", -5*3600)
	a := time.Date(2024, time.March, 13, 23, 0, 0, 0, loc)
	// 03:00 UTC on the 14th is still the 13th at UTC-5.
	b := time.Date(2024, time.March, 14, 3, 0, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("expected times to share a local day")
	}
	if SameDay(a, b.Add(3*time.Hour)) {
		t.Error("expected different local days")
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{now.Add(-48 * time.Hour), "2 days ago"},
	}
	for _, tt := range tests {
		if got := RelativeTime(tt.at, now); got != tt.want {
			t.Errorf("RelativeTime(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	tests := map[int]string{1: "+1", -1: "-1", 0: "0", 12: "+12"}
	for in, want := range tests {
		if got := FormatDelta(in); got != want {
			t.Errorf("FormatDelta(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Errorf("FormatCount = %q", got)
	}
	if got := FormatCount(-42); got != "-42" {
		t.Errorf("FormatCount = %q", got)
	}
}
