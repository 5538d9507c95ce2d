package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/storage/sqlite"
	"github.com/julianstephens/turnkey/internal/tracker"
	"github.com/julianstephens/turnkey/internal/utils"
)

func newTestModel(t *testing.T) (Model, *tracker.Service) {
	t.Helper()
	logger.Discard()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc := tracker.New(store, scheduler.New(0), utils.FixedClock("2024-03-10"))
	if err := svc.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	return NewModel(svc), svc
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	for _, r := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestLogKeys(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(t, m, "t")
	if n := len(svc.State().Events); n != 1 {
		t.Fatalf("expected 1 turn after 't', got %d", n)
	}
	if m.isError || !strings.Contains(m.message, "Logged top") {
		t.Errorf("message = %q", m.message)
	}

	// top is now inside its interval
	m = press(t, m, "t")
	if n := len(svc.State().Events); n != 1 {
		t.Errorf("guarded log wrote a turn, have %d", n)
	}
	if !strings.HasPrefix(m.message, "Not logged") {
		t.Errorf("message = %q", m.message)
	}

	m = press(t, m, "b")
	if n := len(svc.State().Events); n != 2 {
		t.Errorf("expected 2 turns after 'b', got %d", n)
	}
	if len(m.dashboard.History) != 2 {
		t.Errorf("dashboard not refreshed: %d history rows", len(m.dashboard.History))
	}
}

func TestUndoConfirm(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(t, m, "u")
	if m.state != StateDashboard || m.message != "Nothing to undo." {
		t.Fatalf("undo on empty log: state=%v message=%q", m.state, m.message)
	}

	m = press(t, m, "t")
	m = press(t, m, "u")
	if m.state != StateConfirmUndo {
		t.Fatalf("expected confirm state, got %v", m.state)
	}
	if !strings.Contains(m.View(), "Remove the top turn") {
		t.Error("confirm view missing prompt")
	}

	m = press(t, m, "n")
	if m.state != StateDashboard || len(svc.State().Events) != 1 {
		t.Fatalf("cancel changed state: %v, %d turns", m.state, len(svc.State().Events))
	}

	m = press(t, m, "uy")
	if len(svc.State().Events) != 0 {
		t.Errorf("expected turn removed, have %d", len(svc.State().Events))
	}
	if !strings.Contains(m.message, "Removed top turn on 2024-03-10") {
		t.Errorf("message = %q", m.message)
	}
}

func TestTabsAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.state != StateHistory {
		t.Fatalf("expected history tab, got %v", m.state)
	}
	if !strings.Contains(m.View(), "No turns logged yet.") {
		t.Error("empty history view missing placeholder")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	if m.state != StateDashboard {
		t.Errorf("expected dashboard tab, got %v", m.state)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	if !m.quitting || cmd == nil {
		t.Error("expected quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
