package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, help and status line
		m.historyModel.SetSize(msg.Width-4, max(msg.Height-8, 1))
		return m, nil

	case tea.KeyMsg:
		if m.state == StateConfirmUndo {
			return m.updateConfirmUndo(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.LogTop):
			m.logTurn(models.SelectTop)
			return m, nil
		case key.Matches(msg, m.keys.LogBot):
			m.logTurn(models.SelectBottom)
			return m, nil
		case key.Matches(msg, m.keys.LogBoth):
			m.logTurn(models.SelectBoth)
			return m, nil
		case key.Matches(msg, m.keys.Undo):
			if len(m.dashboard.History) == 0 {
				m.setMessage("Nothing to undo.")
				return m, nil
			}
			m.previousState = m.state
			m.state = StateConfirmUndo
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			if err := m.tracker.Load(); err != nil {
				m.setError(err)
				return m, nil
			}
			m.refresh()
			m.setMessage("Reloaded.")
			return m, nil
		}
	}

	if m.state == StateHistory {
		var cmd tea.Cmd
		m.historyModel, cmd = m.historyModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateConfirmUndo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		removed, ok, err := m.tracker.UndoLast()
		switch {
		case err != nil:
			m.setError(err)
		case !ok:
			m.setMessage("Nothing to undo.")
		default:
			m.setMessage(fmt.Sprintf("Removed %s turn on %s.", removed.Arch, removed.Day))
		}
		m.refresh()
		m.state = m.previousState
	case "n", "N", "esc", "q":
		m.state = m.previousState
	}
	return m, nil
}

func (m *Model) logTurn(sel models.Selector) {
	res, err := m.tracker.LogTurn(sel, "", "")
	if err != nil {
		m.setError(err)
		return
	}
	if len(res.Logged) == 0 {
		m.setMessage("Not logged: " + cli.FormatEligibility(res.Eligibility))
		return
	}

	msg := fmt.Sprintf("Logged %s for %s.", joinArches(res.Logged), res.Logged[0].Day)
	if res.LogTogetherDisabled {
		msg += " Log-together turned off: one arch is complete."
	}
	m.refresh()
	m.setMessage(msg)
}

func joinArches(events []models.TurnEvent) string {
	if len(events) == 2 {
		return "top and bottom"
	}
	return string(events[0].Arch)
}
