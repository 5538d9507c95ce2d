package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/turnkey/internal/cli"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateDashboard:
		content = docStyle.Render(cli.RenderStatus(m.dashboard))
	case StateHistory:
		content = docStyle.Render(m.historyModel.View())
	case StateConfirmUndo:
		content = m.viewConfirmUndo()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewMessage(),
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.state
	if active == StateConfirmUndo {
		active = m.previousState
	}
	for i, title := range []string{"Dashboard", "History"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewMessage() string {
	if m.message == "" {
		return ""
	}
	if m.isError {
		return dangerStyle.Render(m.message)
	}
	return infoStyle.Render(m.message)
}

func (m Model) viewConfirmUndo() string {
	last := m.dashboard.History[0]
	prompt := "Remove the " + string(last.Arch) + " turn logged on " + last.Day + "?"
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			mutedStyle.Render("[y] Yes"),
			mutedStyle.Render("[n] No"),
		),
	)
}
