package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/stats"
)

// InsertResult stores a completed test and its latency histogram.
func (s *Store) InsertResult(ctx context.Context, result model.TestResult) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO results (completed_at, mode, difficulty, wpm, net_wpm, accuracy, characters_typed, errors, backspaces, streak, text_length, duration_ms, avg_latency_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.CompletedAt.UTC().Format(timeLayout),
		string(result.Mode),
		string(result.Difficulty),
		result.WPM,
		result.NetWPM,
		result.Accuracy,
		result.CharactersTyped,
		result.ErrorsCount,
		result.Backspaces,
		result.CurrentStreak,
		result.TextLength,
		result.TimeElapsed,
		stats.AverageLatency(result.KeyLatencies),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(result.KeyLatencies) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO result_latency_buckets (result_id, bucket, label, count)
			 VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, b := range stats.LatencyHistogram(result.KeyLatencies) {
			if _, err := stmt.ExecContext(ctx, id, i, b.Label, b.Count); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListResults returns the most recent results, oldest first. A non-positive
// last returns every result.
func (s *Store) ListResults(ctx context.Context, last int) ([]model.ResultRecord, error) {
	if last <= 0 {
		last = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, completed_at, mode, difficulty, wpm, net_wpm, accuracy, characters_typed, errors, backspaces, streak, text_length, duration_ms, avg_latency_ms
		 FROM (
			SELECT * FROM results ORDER BY completed_at DESC, id DESC LIMIT ?
		 )
		 ORDER BY completed_at ASC, id ASC`, last)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ResultRecord
	for rows.Next() {
		var rec model.ResultRecord
		var completedAt, mode, difficulty string
		r := &rec.Result
		if err := rows.Scan(&rec.ID, &completedAt, &mode, &difficulty, &r.WPM, &r.NetWPM, &r.Accuracy,
			&r.CharactersTyped, &r.ErrorsCount, &r.Backspaces, &r.CurrentStreak, &r.TextLength,
			&r.TimeElapsed, &rec.AverageLatency); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, completedAt)
		if err != nil {
			return nil, err
		}
		r.CompletedAt = parsed
		r.Mode = model.Mode(mode)
		r.Difficulty = model.Difficulty(difficulty)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// LatencyHistogram sums the latency buckets of the most recent results.
func (s *Store) LatencyHistogram(ctx context.Context, last int) (stats.Histogram, error) {
	if last <= 0 {
		last = -1
	}
	h := stats.LatencyHistogram(nil)
	rows, err := s.db.QueryContext(ctx,
		`WITH recent AS (
			SELECT id FROM results ORDER BY completed_at DESC, id DESC LIMIT ?
		)
		SELECT b.bucket, SUM(b.count)
		FROM result_latency_buckets b
		JOIN recent r ON r.id = b.result_id
		GROUP BY b.bucket`, last)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var bucket, count int
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, err
		}
		if bucket >= 0 && bucket < len(h) {
			h[bucket].Count += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return h, nil
}

// Summary reports the most recent and the best net WPM for a mode and
// difficulty. ok is false when no result matches.
func (s *Store) Summary(ctx context.Context, mode model.Mode, difficulty model.Difficulty) (last, best int, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT
			(SELECT net_wpm FROM results WHERE mode = ? AND difficulty = ? ORDER BY completed_at DESC, id DESC LIMIT 1),
			MAX(net_wpm)
		 FROM results WHERE mode = ? AND difficulty = ?`,
		string(mode), string(difficulty), string(mode), string(difficulty))
	var lastVal, bestVal sql.NullInt64
	if err := row.Scan(&lastVal, &bestVal); err != nil {
		return 0, 0, false, err
	}
	if !lastVal.Valid || !bestVal.Valid {
		return 0, 0, false, nil
	}
	return int(lastVal.Int64), int(bestVal.Int64), true, nil
}
