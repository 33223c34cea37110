package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/app"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/tui/components/counterlist"
	"github.com/julianstephens/tally/internal/tui/components/detail"
)

// CounterFormModel holds the raw text of the add/edit form.
type CounterFormModel struct {
	Name    string
	Unit    string
	Color   string
	Tags    string
	Initial string
	Goal    string
	Icon    string
}

type Model struct {
	svc           *app.Service
	st            app.State
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	counterList   counterlist.Model
	detail        detail.Model
	form          *huh.Form
	counterForm   *CounterFormModel
	editing       *models.Counter // nil while adding
	selectedID    string
	tagFilter     string
	confirmText   string
	pendingAction func() tea.Cmd
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

// NewModel builds the interactive UI over an already loaded state.
func NewModel(svc *app.Service, st app.State) Model {
	m := Model{
		svc:         svc,
		st:          st,
		state:       constants.StateList,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		counterList: counterlist.New(nil, 0, 0),
		detail:      detail.New(0, 0, svc.Now),
	}
	m.refreshList()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDetail:
		keys = append(keys, m.keys.Back, m.keys.Inc, m.keys.Dec, m.keys.History, m.keys.Edit)
	case constants.StateHistory:
		keys = append(keys, m.keys.Back, m.keys.Range)
	case constants.StateConfirm:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Back, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateDetail:
		actions = []key.Binding{m.keys.Inc, m.keys.Dec, m.keys.History, m.keys.Edit, m.keys.Delete, m.keys.Reset}
	case constants.StateHistory:
		actions = []key.Binding{m.keys.Range, m.keys.Inc, m.keys.Dec}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return m.detail.Init()
}

// State returns the data the UI currently shows.
func (m Model) State() app.State {
	return m.st
}

// refreshList rebuilds the list rows from the current state and tag filter.
func (m *Model) refreshList() {
	if m.tagFilter != "" && !slices.Contains(m.st.Tags(), m.tagFilter) {
		m.tagFilter = ""
	}
	counters := m.st.Filter(m.tagFilter, "")
	items := make([]counterlist.Item, len(counters))
	for i, c := range counters {
		items[i] = counterlist.Item{Counter: c, Total: m.st.Total(c.ID)}
	}
	m.counterList.SetCounters(items)
}

// refreshDetail reloads the detail screen for the selected counter. It
// returns false when that counter no longer exists.
func (m *Model) refreshDetail() bool {
	c, ok := m.st.Counter(m.selectedID)
	if !ok {
		return false
	}
	m.detail.SetCounter(c, m.st.EntriesFor(c.ID))
	return true
}

// nextTag cycles the list filter through every tag and back to none.
func (m *Model) nextTag() {
	tags := m.st.Tags()
	if len(tags) == 0 {
		m.tagFilter = ""
		return
	}
	if m.tagFilter == "" {
		m.tagFilter = tags[0]
		return
	}
	for i, t := range tags {
		if t == m.tagFilter {
			if i+1 < len(tags) {
				m.tagFilter = tags[i+1]
			} else {
				m.tagFilter = ""
			}
			return
		}
	}
	m.tagFilter = ""
}

func (m *Model) setError(err error) {
	m.err = err
	m.status = ""
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}
