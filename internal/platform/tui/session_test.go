package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store, mode string) SessionModel {
	t.Helper()
	return NewSessionModel(store, testRuntime(), log.New(io.Discard), mode)
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	var m tea.Model = newTestSession(t, nil, "")
	if !strings.Contains(m.View(), "Select a mode") {
		t.Fatalf("View() should show the menu, got:\n%s", m.View())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.(SessionModel).screen != screenGame {
		t.Fatalf("screen = %d, expected game", m.(SessionModel).screen)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, TickMsg{}, runeKey('p'), TickMsg{})
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() should show the pause overlay")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Errorf("screen = %d, expected menu after leaving a paused run", m.(SessionModel).screen)
	}

	// A tick left over from the run is ignored by the menu.
	m = send(t, m, TickMsg{})
	if m.(SessionModel).screen != screenMenu {
		t.Error("stale tick should not leave the menu")
	}
}

func TestSessionScoreboard(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	//nolint:errcheck // Fixture
	store.SaveRun(storage.Run{Mode: runner.ModeCampaign, Score: 777, Level: 2, Gems: 9})

	var m tea.Model = newTestSession(t, store, "")
	if !strings.Contains(m.View(), "best 777") {
		t.Error("menu should show the stored high score")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).screen != screenScores {
		t.Fatalf("screen = %d, expected scores", m.(SessionModel).screen)
	}
	if !strings.Contains(m.View(), "777") {
		t.Errorf("scoreboard should list the stored run, got:\n%s", m.View())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Errorf("screen = %d, expected menu", m.(SessionModel).screen)
	}
}

func TestSessionDirectMode(t *testing.T) {
	m := newTestSession(t, nil, runner.ModeEndless)
	if m.screen != screenGame {
		t.Fatalf("screen = %d, expected game", m.screen)
	}
	if m.game.game.ID() != runner.ModeEndless {
		t.Errorf("mode = %q, expected %q", m.game.game.ID(), runner.ModeEndless)
	}
	if m.Init() == nil {
		t.Error("Init() should start ticking")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t, nil, "")
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Error("q should quit the session")
	}
	if next.View() != "" {
		t.Error("View() should be empty after quit")
	}
}
