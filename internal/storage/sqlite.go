// Package storage provides SQLite-based run history for forager sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only one summary row per finished session is stored; the simulation
// state itself is never saved or restored.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is the summary of one finished session.
type Run struct {
	ID        string // ULID, sortable by creation time
	Mode      string
	Player    string // SSH user or empty for local play
	Collected int
	Level     int
	Crafted   int
	Duration  time.Duration // Game time, pauses excluded
	CreatedAt time.Time
}

// ModeStats holds aggregated statistics for a mode.
type ModeStats struct {
	Mode         string
	RunsCount    int
	BestScore    int
	AvgScore     float64
	TotalCrafted int
	MaxLevel     int
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			collected INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			crafted INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, collected DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished session. A run without an ID gets a new ULID.
// Returns the ID of the stored run.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = ulid.Make().String()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, mode, player, collected, level, crafted, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Mode, r.Player, r.Collected, r.Level, r.Crafted, r.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, mode, player, collected, level, crafted, duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var durationMs int64
	var createdAt any
	if err := row.Scan(&r.ID, &r.Mode, &r.Player, &r.Collected, &r.Level, &r.Crafted, &durationMs, &createdAt); err != nil {
		return r, err
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// TopRuns retrieves the best N runs for the given mode.
// Results are ordered by collected count, then level, descending.
func (s *Store) TopRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE mode = ?
		 ORDER BY collected DESC, level DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Run retrieves a single run by ID.
func (s *Store) Run(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// BestScore returns the highest collected count for the given mode.
// Returns 0 if no runs exist.
func (s *Store) BestScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(collected) FROM runs WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given mode.
func (s *Store) ClearRuns(mode string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// AllModeStats retrieves statistics for every mode that has been played.
func (s *Store) AllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(collected), AVG(collected), SUM(crafted), MAX(level), MAX(created_at)
		 FROM runs
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.RunsCount, &m.BestScore, &m.AvgScore, &m.TotalCrafted, &m.MaxLevel, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
