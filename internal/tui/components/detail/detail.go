package detail

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/tui/components/chart"
	"github.com/julianstephens/tally/internal/utils"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	rangeActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true).
				Underline(true)
)

const (
	chartRows     = 8
	progressWidth = 30
)

// Mode picks what the screen shows about the counter.
type Mode int

const (
	ModeStats Mode = iota
	ModeHistory
)

type Model struct {
	viewport viewport.Model
	Counter  *models.Counter
	Entries  []models.Entry
	Mode     Mode
	Range    aggregate.Range
	clock    func() time.Time
	width    int
	height   int
}

// New builds an empty detail screen. clock is read on every render, so the
// day boundaries follow the wall clock while the screen stays open.
func New(width, height int, clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}
	return Model{
		viewport: viewport.New(width, height),
		Range:    aggregate.RangeWeek,
		clock:    clock,
	}
}

// TickMsg redraws the screen so "Today" and the charts roll over at midnight.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		m.Render()
		return m, tick()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Counter == nil {
		return "No counter selected."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetCounter(c models.Counter, entries []models.Entry) {
	m.Counter = &c
	m.Entries = entries
	m.Render()
}

// NextRange cycles day, week and month.
func (m *Model) NextRange() {
	i := slices.Index(aggregate.Ranges, m.Range)
	m.Range = aggregate.Ranges[(i+1)%len(aggregate.Ranges)]
	m.Render()
}

func (m *Model) SetMode(mode Mode) {
	m.Mode = mode
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Counter == nil {
		m.viewport.SetContent("No counter loaded.")
		return
	}
	now := m.clock()
	if m.Mode == ModeHistory {
		m.viewport.SetContent(m.renderHistory(now))
		return
	}
	m.viewport.SetContent(m.renderStats(now))
}

func (m Model) header() string {
	c := m.Counter
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Bold(true).Render("● " + c.Name)
	if c.Icon != nil {
		title += " " + mutedStyle.Render(c.Icon.Value())
	}
	return title
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func (m Model) renderStats(now time.Time) string {
	c := *m.Counter
	var b strings.Builder

	b.WriteString(m.header() + "\n\n")

	total := aggregate.Total(c, m.Entries)
	b.WriteString(row("Total", fmt.Sprintf("%s %s", humanize.Comma(int64(total)), c.Unit)))
	if p, ok := aggregate.GoalProgress(total, c.Goal); ok {
		status := fmt.Sprintf(" %.0f%% of %s", p.Percent, humanize.Comma(int64(p.Goal)))
		if p.Reached {
			status += " ✓"
		}
		b.WriteString(labelStyle.Render("Goal") + chart.Progress(p.Percent, progressWidth, c.Color) + status + "\n")
	}
	b.WriteString("\n")

	totals := aggregate.PeriodTotals(c, m.Entries, now)
	b.WriteString(row("Today", utils.FormatDelta(totals[aggregate.PeriodDay])))
	b.WriteString(row("This week", utils.FormatDelta(totals[aggregate.PeriodWeek])))
	b.WriteString(row("This month", utils.FormatDelta(totals[aggregate.PeriodMonth])))
	b.WriteString(row("This year", utils.FormatDelta(totals[aggregate.PeriodYear])))
	b.WriteString(row("Daily avg", aggregate.FormatAverage(aggregate.DailyAverage(c, m.Entries, now))))
	b.WriteString(row("Peak day", utils.FormatCount(aggregate.PeakDay(m.Entries, now.Location()))))
	b.WriteString(row("Entries", utils.FormatCount(len(m.Entries))))
	b.WriteString(row("Created", c.CreatedAt.Local().Format(constants.DateFormat)))
	if len(c.Tags) > 0 {
		b.WriteString(row("Tags", "#"+strings.Join(c.Tags, " #")))
	}
	return b.String()
}

func (m Model) renderHistory(now time.Time) string {
	c := *m.Counter
	var b strings.Builder

	b.WriteString(m.header() + "\n\n")

	var ranges []string
	for _, r := range aggregate.Ranges {
		name := strings.ToUpper(string(r[:1])) + string(r[1:])
		if r == m.Range {
			ranges = append(ranges, rangeActiveStyle.Render(name))
		} else {
			ranges = append(ranges, mutedStyle.Render(name))
		}
	}
	b.WriteString(strings.Join(ranges, "  ") + "\n\n")

	points := slices.Collect(aggregate.Series(c, m.Entries, m.Range, now))
	b.WriteString(chart.Bars(points, chartRows, c.Color) + "\n\n")

	b.WriteString(valueStyle.Render("Recent activity") + "\n")
	recent := aggregate.Recent(m.Entries, constants.RecentEntryLimit)
	if len(recent) == 0 {
		b.WriteString(mutedStyle.Render("No entries yet.") + "\n")
	}
	for _, e := range recent {
		fmt.Fprintf(&b, "%6s  %s\n", utils.FormatDelta(e.Value), mutedStyle.Render(utils.RelativeTime(e.Timestamp, now)))
	}
	return b.String()
}
