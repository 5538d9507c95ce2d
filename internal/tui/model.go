package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/turnkey/internal/tracker"
	"github.com/julianstephens/turnkey/internal/tui/components/history"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateHistory
	StateConfirmUndo
)

const tabCount = 2

type Model struct {
	tracker       *tracker.Service
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	historyModel  history.Model
	dashboard     tracker.Dashboard
	message       string
	isError       bool
	quitting      bool
	width         int
	height        int
}

func NewModel(svc *tracker.Service) Model {
	m := Model{
		tracker:      svc,
		state:        StateDashboard,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		historyModel: history.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-derives the dashboard from the tracker's committed state.
func (m *Model) refresh() {
	m.dashboard = m.tracker.Dashboard()
	m.historyModel.SetEvents(m.dashboard.History)
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.isError = false
}

func (m *Model) setError(err error) {
	m.message = err.Error()
	m.isError = true
}
