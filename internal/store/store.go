// Package store handles leaderboard and result persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/typemaster/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is RFC 3339 with fixed-width nanoseconds so stored text sorts
// chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for leaderboard entries and result history.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, log: log}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS leaderboard_entries (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			net_wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			completed_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			net_wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			characters_typed INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			backspaces INTEGER NOT NULL,
			streak INTEGER NOT NULL,
			text_length INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			avg_latency_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS result_latency_buckets (
			result_id INTEGER NOT NULL,
			bucket INTEGER NOT NULL,
			label TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (result_id, bucket)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_completed_at ON results(completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_entries_mode ON leaderboard_entries(mode, difficulty);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReadAll returns every leaderboard entry in insertion order. Rows whose
// timestamp cannot be parsed are skipped.
func (s *Store) ReadAll(ctx context.Context) ([]model.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, wpm, net_wpm, accuracy, mode, difficulty, created_at
		 FROM leaderboard_entries
		 ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		var mode, difficulty, createdAt string
		if err := rows.Scan(&e.ID, &e.Username, &e.WPM, &e.NetWPM, &e.Accuracy, &mode, &difficulty, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			s.log.Warn().Err(err).Str("id", e.ID).Msg("skipping leaderboard row with bad timestamp")
			continue
		}
		e.Mode = model.Mode(mode)
		e.Difficulty = model.Difficulty(difficulty)
		e.CreatedAt = parsed
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Append stores one leaderboard entry.
func (s *Store) Append(ctx context.Context, e model.LeaderboardEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard_entries (id, username, wpm, net_wpm, accuracy, mode, difficulty, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Username,
		e.WPM,
		e.NetWPM,
		e.Accuracy,
		string(e.Mode),
		string(e.Difficulty),
		e.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

// Clear removes every leaderboard entry. Result history is kept.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM leaderboard_entries`)
	return err
}
