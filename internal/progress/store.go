// Package progress persists counters, level results and achievements in a
// local SQLite file.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Counter keys.
const (
	CounterPlacements = "placements"
	CounterMistakes   = "mistakes"
	CounterHints      = "hints"
	CounterAtoms      = "atoms_completed"
	CounterPoints     = "points"
	CounterBestStreak = "best_streak"
	CounterRating     = "rating"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS counters (
		key   TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS levels (
		z           INTEGER PRIMARY KEY,
		stars       INTEGER NOT NULL,
		best_points INTEGER NOT NULL,
		completions INTEGER NOT NULL,
		updated_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS achievements (
		id          TEXT PRIMARY KEY,
		unlocked_at INTEGER NOT NULL
	)`,
}

// Store is the progress database.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// LevelResult is the best result recorded for one atom.
type LevelResult struct {
	Z           int       `json:"z"`
	Stars       int       `json:"stars"`
	BestPoints  int       `json:"best_points"`
	Completions int       `json:"completions"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Stats is everything the store knows.
type Stats struct {
	Counters     map[string]int64     `json:"counters"`
	Levels       map[int]LevelResult  `json:"levels"`
	Achievements map[string]time.Time `json:"achievements"`
}

// Stars returns the best stars per atomic number.
func (s Stats) Stars() map[int]int {
	out := make(map[int]int, len(s.Levels))
	for z, l := range s.Levels {
		out[z] = l.Stars
	}
	return out
}

// Open opens (creating if needed) the progress database at path.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("creating progress dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows one writer; keep database/sql from racing itself.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	logger.Debug("progress store opened", zap.String("path", path))
	return &Store{db: db, path: path, logger: logger}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Incr adds delta to a counter and returns the new value.
func (s *Store) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO counters (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = value + excluded.value
	`, key, delta)
	if err != nil {
		return 0, fmt.Errorf("incrementing %s: %w", key, err)
	}
	return s.Counter(ctx, key)
}

// Set overwrites a counter.
func (s *Store) Set(ctx context.Context, key string, value int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO counters (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// Max raises a counter to value if it is lower.
func (s *Store) Max(ctx context.Context, key string, value int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO counters (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = MAX(value, excluded.value)
	`, key, value)
	if err != nil {
		return fmt.Errorf("raising %s: %w", key, err)
	}
	return nil
}

// Counter returns a counter, zero when unset.
func (s *Store) Counter(ctx context.Context, key string) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, nil
}

// RecordLevel stores a completed atom, keeping the best stars and points.
func (s *Store) RecordLevel(ctx context.Context, z, stars, points int) (LevelResult, error) {
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO levels (z, stars, best_points, completions, updated_at) VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(z) DO UPDATE SET
			stars = MAX(stars, excluded.stars),
			best_points = MAX(best_points, excluded.best_points),
			completions = completions + 1,
			updated_at = excluded.updated_at
	`, z, stars, points, now)
	if err != nil {
		return LevelResult{}, fmt.Errorf("recording level %d: %w", z, err)
	}
	s.logger.Info("level recorded", zap.Int("z", z), zap.Int("stars", stars), zap.Int("points", points))
	return s.Level(ctx, z)
}

// Level returns the stored result for z; Completions is zero if never done.
func (s *Store) Level(ctx context.Context, z int) (LevelResult, error) {
	r := LevelResult{Z: z}
	var updated int64
	err := s.db.QueryRowContext(ctx, `
		SELECT stars, best_points, completions, updated_at FROM levels WHERE z = ?
	`, z).Scan(&r.Stars, &r.BestPoints, &r.Completions, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return r, nil
	}
	if err != nil {
		return r, fmt.Errorf("reading level %d: %w", z, err)
	}
	r.UpdatedAt = time.Unix(updated, 0)
	return r, nil
}

// Unlock records an achievement. It reports whether it was newly unlocked.
func (s *Store) Unlock(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO achievements (id, unlocked_at) VALUES (?, ?)
	`, id, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("unlocking %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlocking %s: %w", id, err)
	}
	if n > 0 {
		s.logger.Info("achievement unlocked", zap.String("id", id))
	}
	return n > 0, nil
}

// Stats loads all counters, level results and achievements.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{
		Counters:     make(map[string]int64),
		Levels:       make(map[int]LevelResult),
		Achievements: make(map[string]time.Time),
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM counters`)
	if err != nil {
		return st, fmt.Errorf("querying counters: %w", err)
	}
	for rows.Next() {
		var k string
		var v int64
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return st, fmt.Errorf("scanning counter: %w", err)
		}
		st.Counters[k] = v
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return st, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT z, stars, best_points, completions, updated_at FROM levels`)
	if err != nil {
		return st, fmt.Errorf("querying levels: %w", err)
	}
	for rows.Next() {
		var r LevelResult
		var updated int64
		if err := rows.Scan(&r.Z, &r.Stars, &r.BestPoints, &r.Completions, &updated); err != nil {
			rows.Close()
			return st, fmt.Errorf("scanning level: %w", err)
		}
		r.UpdatedAt = time.Unix(updated, 0)
		st.Levels[r.Z] = r
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return st, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, unlocked_at FROM achievements`)
	if err != nil {
		return st, fmt.Errorf("querying achievements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var at int64
		if err := rows.Scan(&id, &at); err != nil {
			return st, fmt.Errorf("scanning achievement: %w", err)
		}
		st.Achievements[id] = time.Unix(at, 0)
	}
	return st, rows.Err()
}

// Reset deletes all progress.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"counters", "levels", "achievements"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	s.logger.Warn("progress reset", zap.String("path", s.path))
	return nil
}
