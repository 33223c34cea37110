package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/app"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/tui/components/counterlist"
	"github.com/julianstephens/tally/internal/tui/components/detail"
	"github.com/julianstephens/tally/internal/utils"
)

// stateChangedMsg carries the result of a write back into the UI.
type stateChangedMsg struct {
	st     app.State
	status string
	err    error
}

const (
	headerHeight = 2
	footerHeight = 3
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(msg.Width, msg.Height)
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width - 4)
		}
		return m, nil
	}
	if msg, ok := msg.(stateChangedMsg); ok {
		m.applyChange(msg)
		return m, nil
	}
	if _, ok := msg.(detail.TickMsg); ok {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch m.state {
	case constants.StateNewCounter, constants.StateEditCounter:
		return m.updateForm(msg)
	case constants.StateConfirm:
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.previousState = m.state
		m.state = constants.StateConfirm
		m.confirmText = msg.Message
		m.pendingAction = msg.Action
		return m, nil

	case counterlist.AddCounterMsg:
		return m.startForm(nil)

	case counterlist.EditCounterMsg:
		return m.startForm(&msg.Counter)

	case counterlist.DeleteCounterMsg:
		return m, m.confirmDelete(msg.ID)

	case counterlist.OpenCounterMsg:
		m.selectedID = msg.ID
		if m.refreshDetail() {
			m.detail.SetMode(detail.ModeStats)
			m.state = constants.StateDetail
		}
		return m, nil

	case counterlist.LogEntryMsg:
		return m, m.logEntry(msg.ID, msg.Value)

	case counterlist.CycleTagMsg:
		m.nextTag()
		m.refreshList()
		return m, nil

	case tea.KeyMsg:
		if m.state == constants.StateList && m.counterList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if m.state == constants.StateDetail || m.state == constants.StateHistory {
			return m.handleDetailKeys(msg)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateList:
		m.counterList, cmd = m.counterList.Update(msg)
	case constants.StateDetail, constants.StateHistory:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := docStyle.GetFrameSize()
	bodyHeight := max(height-v-headerHeight-footerHeight, 1)
	m.counterList.SetSize(width-h, bodyHeight)
	m.detail.SetSize(width-h, bodyHeight)
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c, ok := m.st.Counter(m.selectedID)
	if !ok {
		m.state = constants.StateList
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.state == constants.StateHistory {
			m.state = constants.StateDetail
			m.detail.SetMode(detail.ModeStats)
		} else {
			m.state = constants.StateList
		}
		return m, nil
	case key.Matches(msg, m.keys.Inc):
		return m, m.logEntry(c.ID, 1)
	case key.Matches(msg, m.keys.Dec):
		return m, m.logEntry(c.ID, -1)
	case key.Matches(msg, m.keys.History):
		m.state = constants.StateHistory
		m.detail.SetMode(detail.ModeHistory)
		return m, nil
	case key.Matches(msg, m.keys.Range) && m.state == constants.StateHistory:
		m.detail.NextRange()
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		return m.startForm(&c)
	case key.Matches(msg, m.keys.Delete):
		return m, m.confirmDelete(c.ID)
	case key.Matches(msg, m.keys.Reset):
		return m, m.confirmReset(c.ID)
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) startForm(c *models.Counter) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.editing = c
	m.counterForm = newCounterFormModel(c)
	m.form = NewCounterForm(m.counterForm, m.st.Tags())
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width - 4)
	}
	if c == nil {
		m.state = constants.StateNewCounter
	} else {
		m.state = constants.StateEditCounter
	}
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		in, err := m.counterForm.Input(m.editing)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if m.editing == nil {
			cmds = append(cmds, m.mutate(func(st app.State) (app.State, string, error) {
				next, c, err := m.svc.AddCounter(st, in)
				return next, fmt.Sprintf("Added %q", c.Name), err
			}))
		} else {
			id := m.editing.ID
			cmds = append(cmds, m.mutate(func(st app.State) (app.State, string, error) {
				next, err := m.svc.UpdateCounter(st, id, in)
				return next, "Saved changes", err
			}))
		}
		m.form = nil
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.state = m.previousState
		action := m.pendingAction
		m.pendingAction = nil
		if action != nil {
			return m, action()
		}
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = m.previousState
		m.pendingAction = nil
	}
	return m, nil
}

func (m Model) confirmDelete(id string) tea.Cmd {
	c, ok := m.st.Counter(id)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return constants.ConfirmationMsg{
			Message: fmt.Sprintf("Delete %q and all of its entries?", c.Name),
			Action: func() tea.Cmd {
				return m.mutate(func(st app.State) (app.State, string, error) {
					next, err := m.svc.DeleteCounter(st, id)
					return next, fmt.Sprintf("Deleted %q", c.Name), err
				})
			},
		}
	}
}

func (m Model) confirmReset(id string) tea.Cmd {
	c, ok := m.st.Counter(id)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return constants.ConfirmationMsg{
			Message: fmt.Sprintf("Clear every entry of %q?", c.Name),
			Action: func() tea.Cmd {
				return m.mutate(func(st app.State) (app.State, string, error) {
					next, err := m.svc.ClearEntries(st, id)
					return next, fmt.Sprintf("Reset %q", c.Name), err
				})
			},
		}
	}
}

// logEntry records a +1 or -1 and announces a goal the entry reaches.
func (m Model) logEntry(id string, value int) tea.Cmd {
	c, ok := m.st.Counter(id)
	if !ok {
		return nil
	}
	before := m.st.Total(id)
	return m.mutate(func(st app.State) (app.State, string, error) {
		next, _, err := m.svc.LogEntry(st, id, value)
		if err != nil {
			return next, "", err
		}
		after := next.Total(id)
		status := fmt.Sprintf("%s: %s", c.Name, utils.FormatCount(after))
		if c.HasGoal() && before < *c.Goal && after >= *c.Goal {
			status = fmt.Sprintf("🎉 %s reached its goal of %s!", c.Name, utils.FormatCount(*c.Goal))
		}
		return next, status, nil
	})
}

// mutate runs fn against the current state as a command. The service
// serializes the writes, but their results can still arrive out of order.
func (m Model) mutate(fn func(app.State) (app.State, string, error)) tea.Cmd {
	st := m.st
	return func() tea.Msg {
		next, status, err := fn(st)
		return stateChangedMsg{st: next, status: status, err: err}
	}
}

// applyChange shows the outcome of a write. A state older than the one on
// screen is dropped, but its error is still reported.
func (m *Model) applyChange(msg stateChangedMsg) {
	stale := msg.st.Revision < m.st.Revision
	switch {
	case msg.err != nil:
		m.setError(msg.err)
	case stale:
		return
	default:
		m.setStatus(msg.status)
	}
	if !stale {
		m.st = msg.st
	}
	m.refreshList()
	if m.state == constants.StateDetail || m.state == constants.StateHistory {
		if !m.refreshDetail() {
			m.state = constants.StateList
		}
	}
}
