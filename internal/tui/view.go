package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateList:
		content = docStyle.Render(m.counterList.View())
	case constants.StateDetail, constants.StateHistory:
		content = docStyle.Render(m.detail.View())
	case constants.StateNewCounter, constants.StateEditCounter:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirm:
		content = m.viewConfirm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("tally")
	var info string
	switch m.state {
	case constants.StateList:
		info = fmt.Sprintf("%d counters", m.counterList.Len())
		if m.tagFilter != "" {
			info += " · #" + m.tagFilter
		}
	case constants.StateDetail:
		info = "details"
	case constants.StateHistory:
		info = "history"
	case constants.StateNewCounter:
		info = "new counter"
	case constants.StateEditCounter:
		info = "edit counter"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, subtleStyle.Render(info))
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("✗ " + m.err.Error())
	}
	if m.status != "" {
		return successStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewConfirm() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.confirmText),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
