package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/turnkey/internal/models"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	archStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(8)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model is a scrollable newest-first turn list.
type Model struct {
	viewport viewport.Model
	events   []models.TurnEvent
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.events) == 0 {
		return "No turns logged yet."
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

func (m *Model) SetEvents(events []models.TurnEvent) {
	m.events = events
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	for _, e := range m.events {
		line := fmt.Sprintf("%s %s", dayStyle.Render(e.Day), archStyle.Render(string(e.Arch)))
		if e.SourceOrDefault() == models.SourceLegacy {
			line += noteStyle.Render("(imported) ")
		}
		if e.Note != "" {
			line += noteStyle.Render(e.Note)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
