// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcomes stored with a result.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Store manages the SQLite database connection for game history.
type Store struct {
	db    *sql.DB
	clock clock.Clock
}

// Option customises a Store.
type Option func(*Store)

// WithClock sets the clock used to timestamp results.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Result is one finished game.
type Result struct {
	ID        int64
	RunID     string // Unique id of the play-through
	PuzzleID  string
	Score     int
	MaxScore  int
	Outcome   string // OutcomeWon or OutcomeLost
	Words     []string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, clock: clock.New()}
	for _, opt := range opts {
		opt(store)
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			puzzle_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			words TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_puzzle_id ON results(puzzle_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(puzzle_id, score DESC);
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

// SaveResult records a finished game. A run id and timestamp are assigned
// when missing. Returns the stored result.
func (s *Store) SaveResult(r Result) (Result, error) {
	if r.PuzzleID == "" {
		return Result{}, errors.New("storage: result has no puzzle id")
	}
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.clock.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)

	words, err := json.Marshal(r.Words)
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot encode words: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO results (run_id, puzzle_id, score, max_score, outcome, words, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.PuzzleID, r.Score, r.MaxScore, r.Outcome,
		string(words),
		r.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	r.ID = id

	return r, nil
}

const resultColumns = `id, run_id, puzzle_id, score, max_score, outcome, words, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (Result, error) {
	var (
		r         Result
		words     string
		createdAt any
	)
	if err := row.Scan(&r.ID, &r.RunID, &r.PuzzleID, &r.Score, &r.MaxScore, &r.Outcome, &words, &createdAt); err != nil {
		return Result{}, err
	}
	if words != "" && words != "null" {
		if err := json.Unmarshal([]byte(words), &r.Words); err != nil {
			return Result{}, fmt.Errorf("storage: cannot decode words: %w", err)
		}
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(time.DateTime, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// TopScores retrieves the top N results for the given puzzle.
// Results are ordered by score descending, earlier games first on ties.
func (s *Store) TopScores(puzzleID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE puzzle_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		puzzleID, limit,
	)
}

// RecentResults retrieves the most recent results across all puzzles.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// LatestResult returns the most recent result for the puzzle, or nil if it
// was never finished.
func (s *Store) LatestResult(puzzleID string) (*Result, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE puzzle_id = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		puzzleID,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query latest result: %w", err)
	}
	return &r, nil
}

// ResultByRunID retrieves a result by its run id, or nil if unknown.
func (s *Store) ResultByRunID(runID string) (*Result, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+` FROM results WHERE run_id = ?`,
		runID,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	return &r, nil
}

// HighScore returns the highest score for the given puzzle.
// Returns 0 if no results exist.
func (s *Store) HighScore(puzzleID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE puzzle_id = ?",
		puzzleID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all results for the given puzzle.
func (s *Store) ClearScores(puzzleID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE puzzle_id = ?", puzzleID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// PuzzleStats contains aggregated statistics for a puzzle.
type PuzzleStats struct {
	PuzzleID   string
	Played     int
	Won        int
	Lost       int
	BestScore  int
	AvgScore   float64
	LastPlayed time.Time
}

const statsColumns = `COUNT(*),
		COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0),
		COALESCE(MAX(score), 0),
		COALESCE(AVG(score), 0),
		MAX(created_at)`

// PuzzleStats retrieves aggregated statistics for a specific puzzle.
func (s *Store) PuzzleStats(puzzleID string) (*PuzzleStats, error) {
	stats := &PuzzleStats{PuzzleID: puzzleID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM results WHERE puzzle_id = ?`,
		puzzleID,
	).Scan(&stats.Played, &stats.Won, &stats.Lost, &stats.BestScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get puzzle stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllPuzzleStats retrieves statistics for all puzzles that have been played.
func (s *Store) AllPuzzleStats() (map[string]*PuzzleStats, error) {
	rows, err := s.db.Query(
		`SELECT puzzle_id, ` + statsColumns + `
		 FROM results
		 GROUP BY puzzle_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all puzzle stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PuzzleStats)
	for rows.Next() {
		var ps PuzzleStats
		var lastPlayed any
		if err := rows.Scan(&ps.PuzzleID, &ps.Played, &ps.Won, &ps.Lost, &ps.BestScore, &ps.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.PuzzleID] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
