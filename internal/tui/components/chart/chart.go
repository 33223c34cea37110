// Package chart draws running-total series and goal progress as text.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/aggregate"
)

const (
	columnWidth = 6
	barGlyph    = "███"
	emptyGlyph  = "   "
	fillGlyph   = "█"
	trackGlyph  = "░"
)

// BarHeights scales totals to whole rows in [0, rows]. The scale always
// includes zero so negative totals get short bars rather than tall ones.
func BarHeights(totals []int, rows int) []int {
	heights := make([]int, len(totals))
	if len(totals) == 0 || rows <= 0 {
		return heights
	}

	lo, hi := 0, 0
	for _, t := range totals {
		lo = min(lo, t)
		hi = max(hi, t)
	}
	if hi == lo {
		return heights
	}

	span := float64(hi - lo)
	for i, t := range totals {
		heights[i] = int(math.Round(float64(t-lo) / span * float64(rows)))
	}
	return heights
}

// Bars renders points as a vertical bar chart rows tall, with the total above
// the axis labels. color is any lipgloss color, usually the counter's hex color.
func Bars(points []aggregate.Point, rows int, color string) string {
	if len(points) == 0 {
		return ""
	}

	totals := make([]int, len(points))
	for i, p := range points {
		totals[i] = p.Total
	}
	heights := BarHeights(totals, rows)
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	var b strings.Builder
	for row := rows; row >= 1; row-- {
		for _, h := range heights {
			glyph := emptyGlyph
			if h >= row {
				glyph = bar.Render(barGlyph)
			}
			b.WriteString(center(glyph, len(barGlyph)))
		}
		b.WriteString("\n")
	}
	for _, t := range totals {
		s := fmt.Sprintf("%d", t)
		b.WriteString(center(s, len(s)))
	}
	b.WriteString("\n")
	for _, p := range points {
		b.WriteString(center(p.Label, len(p.Label)))
	}
	return b.String()
}

// center pads s, whose printable width is w, to columnWidth.
func center(s string, w int) string {
	if w >= columnWidth {
		return s
	}
	left := (columnWidth - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", columnWidth-w-left)
}

// Progress renders a horizontal bar width cells wide filled to percent (0-100).
func Progress(percent float64, width int, color string) string {
	if width <= 0 {
		return ""
	}
	percent = math.Min(100, math.Max(0, percent))
	filled := int(math.Round(percent / 100 * float64(width)))
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	track := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return fill.Render(strings.Repeat(fillGlyph, filled)) + track.Render(strings.Repeat(trackGlyph, width-filled))
}
