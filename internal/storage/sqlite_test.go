package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	runs := []Run{
		{Mode: "forager", Collected: 100, Level: 4, Crafted: 2, Duration: 90 * time.Second},
		{Mode: "forager", Collected: 50, Level: 3},
		{Mode: "forager", Collected: 200, Level: 6, Player: "alice"},
		{Mode: "forager_classic", Collected: 500, Level: 9},
	}
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if len(id) != 26 {
			t.Errorf("SaveRun() id = %q, expected a ULID", id)
		}
	}

	top, err := store.TopRuns("forager", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if top[i].Collected != w {
			t.Errorf("top[%d].Collected = %d, expected %d", i, top[i].Collected, w)
		}
	}
	if top[0].Player != "alice" {
		t.Errorf("top[0].Player = %q, expected alice", top[0].Player)
	}
	if top[1].Duration != 90*time.Second || top[1].Crafted != 2 {
		t.Errorf("top[1] = %+v, expected duration and crafted round-trip", top[1])
	}

	limited, _ := store.TopRuns("forager", 2)
	if len(limited) != 2 {
		t.Errorf("TopRuns(limit 2) returned %d", len(limited))
	}
}

func TestStoreRunByID(t *testing.T) {
	store := openTemp(t)

	id, err := store.SaveRun(Run{ID: "01HZZZZZZZZZZZZZZZZZZZZZZZ", Mode: "forager", Collected: 7, Level: 1})
	if err != nil {
		t.Fatal(err)
	}
	r, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if r.Collected != 7 || r.Mode != "forager" {
		t.Errorf("Run() = %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	if _, err := store.Run("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Run(missing) error = %v, expected ErrNotFound", err)
	}

	if _, err := store.SaveRun(Run{ID: id, Mode: "forager"}); err == nil {
		t.Error("duplicate run ID should fail")
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTemp(t)

	best, err := store.BestScore("forager")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestScore() with no runs = %d, expected 0", best)
	}

	store.SaveRun(Run{Mode: "forager", Collected: 12})
	store.SaveRun(Run{Mode: "forager", Collected: 30})

	best, _ = store.BestScore("forager")
	if best != 30 {
		t.Errorf("BestScore() = %d, expected 30", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTemp(t)
	store.SaveRun(Run{Mode: "forager", Collected: 1})
	store.SaveRun(Run{Mode: "forager_classic", Collected: 2})

	if err := store.ClearRuns("forager"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns("forager", 10); len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("forager_classic", 10); len(runs) != 1 {
		t.Error("ClearRuns should only affect one mode")
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTemp(t)
	store.SaveRun(Run{Mode: "forager", Collected: 10, Level: 2, Crafted: 1})
	store.SaveRun(Run{Mode: "forager", Collected: 30, Level: 4, Crafted: 2})
	store.SaveRun(Run{Mode: "forager_classic", Collected: 5, Level: 1})

	stats, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}
	f := stats["forager"]
	if f == nil {
		t.Fatal("missing forager stats")
	}
	if f.RunsCount != 2 || f.BestScore != 30 || f.AvgScore != 20 || f.TotalCrafted != 3 || f.MaxLevel != 4 {
		t.Errorf("forager stats = %+v", f)
	}
	if stats["forager_classic"].RunsCount != 1 {
		t.Errorf("classic stats = %+v", stats["forager_classic"])
	}
}
