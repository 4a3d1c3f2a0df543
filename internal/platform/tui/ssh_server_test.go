package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-forager/internal/config"
	"github.com/vovakirdan/tui-forager/internal/core"
	"github.com/vovakirdan/tui-forager/internal/games/forager"
	"github.com/vovakirdan/tui-forager/internal/storage"
)

func startSession(t *testing.T) (SessionModel, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	m := NewSessionModel(SessionDeps{
		Store:    store,
		Runtime:  core.DefaultConfig(),
		Game:     config.DefaultForagerConfig(),
		Username: "bob",
	})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gameModel == nil {
		t.Fatal("enter should start the selected mode")
	}

	now := time.Now()
	for i := 0; i < 5; i++ {
		m = sessionUpdate(t, m, TickMsg(now.Add(time.Duration(i)*16*time.Millisecond)))
	}
	return m, store
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionRecordsDroppedGame(t *testing.T) {
	m, store := startSession(t)

	// Connection closed mid-game: no quit key reaches the model.
	m.Finish()
	m.Finish()

	runs, err := store.TopRuns(forager.ModeStandard, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, expected 1", len(runs))
	}
	if runs[0].Player != "bob" || runs[0].Duration <= 0 {
		t.Errorf("stored run = %+v", runs[0])
	}
}

func TestSessionQuitKeyRecordsOnce(t *testing.T) {
	m, store := startSession(t)

	m = sessionUpdate(t, m, runeKey("q"))
	if m.gameModel != nil {
		t.Fatal("q should return to the menu")
	}
	m.Finish()

	runs, _ := store.TopRuns(forager.ModeStandard, 10)
	if len(runs) != 1 {
		t.Errorf("runs = %d, expected 1", len(runs))
	}
}

func TestSessionMenuOnlyRecordsNothing(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := NewSessionModel(SessionDeps{Store: store, Runtime: core.DefaultConfig(), Game: config.DefaultForagerConfig()})
	m.Finish()

	if best, _ := store.BestScore(forager.ModeStandard); best != 0 {
		t.Errorf("BestScore = %d, expected no runs", best)
	}
	stats, _ := store.AllModeStats()
	if len(stats) != 0 {
		t.Errorf("stats = %v, expected no runs", stats)
	}
}
