package counterlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tally/internal/models"
)

type AddCounterMsg struct{}

type EditCounterMsg struct {
	Counter models.Counter
}

type DeleteCounterMsg struct {
	ID string
}

type OpenCounterMsg struct {
	ID string
}

// LogEntryMsg asks for a +1 or -1 entry on the selected counter.
type LogEntryMsg struct {
	ID    string
	Value int
}

type CycleTagMsg struct{}

type Item struct {
	Counter models.Counter
	Total   int
}

func (i Item) Title() string {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(i.Counter.Color)).Render("●")
	return swatch + " " + i.Counter.Name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s %s", humanize.Comma(int64(i.Total)), i.Counter.Unit)
	if i.Counter.HasGoal() {
		desc += fmt.Sprintf(" / %s", humanize.Comma(int64(*i.Counter.Goal)))
		if i.Total >= *i.Counter.Goal {
			desc += " ✓"
		}
	}
	if len(i.Counter.Tags) > 0 {
		desc += " | #" + strings.Join(i.Counter.Tags, " #")
	}
	return desc
}

// FilterValue lets the list's fuzzy filter match names and tags.
func (i Item) FilterValue() string {
	return i.Counter.Name + " " + strings.Join(i.Counter.Tags, " ")
}

type KeyMap struct {
	Increment key.Binding
	Decrement key.Binding
	Open      key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Tag       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "increment"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "decrement"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Tag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle tag"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Counters"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Increment, keys.Decrement, keys.Add}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Increment, keys.Decrement, keys.Open, keys.Add, keys.Edit, keys.Delete, keys.Tag}
	}

	return Model{list: l, keys: keys}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// SetCounters replaces the rows, keeping the cursor where it was when possible.
func (m *Model) SetCounters(items []Item) {
	idx := m.list.Index()
	m.list.SetItems(toListItems(items))
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Selected returns the highlighted counter, if any.
func (m Model) Selected() (models.Counter, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Counter, true
	}
	return models.Counter{}, false
}

// Filtering reports whether the search prompt currently owns the keyboard.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddCounterMsg{} }
		}
		if key.Matches(msg, m.keys.Tag) {
			return m, func() tea.Msg { return CycleTagMsg{} }
		}
		c, ok := m.Selected()
		if !ok {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Increment):
			return m, func() tea.Msg { return LogEntryMsg{ID: c.ID, Value: 1} }
		case key.Matches(msg, m.keys.Decrement):
			return m, func() tea.Msg { return LogEntryMsg{ID: c.ID, Value: -1} }
		case key.Matches(msg, m.keys.Open):
			return m, func() tea.Msg { return OpenCounterMsg{ID: c.ID} }
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return EditCounterMsg{Counter: c} }
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteCounterMsg{ID: c.ID} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No counters yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}
