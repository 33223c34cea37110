package counters

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

func formatTotal(c models.Counter, total int) string {
	return fmt.Sprintf("%s %s", utils.FormatCount(total), c.Unit)
}

// formatGoal renders "3 / 10 (30%)" or an empty string without a goal.
func formatGoal(c models.Counter, total int) string {
	p, ok := aggregate.GoalProgress(total, c.Goal)
	if !ok {
		return ""
	}
	s := fmt.Sprintf("%s / %s (%.0f%%)", utils.FormatCount(total), utils.FormatCount(p.Goal), p.Percent)
	if p.Reached {
		s += " ✓"
	}
	return s
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return "#" + strings.Join(tags, " #")
}

func formatIcon(icon models.Icon) string {
	switch i := icon.(type) {
	case models.SymbolIcon:
		return i.Ref
	case models.ImageIcon:
		return "image " + i.URL
	default:
		return "-"
	}
}
