// Package stats keeps a ledger of the rounds finished by this process. The
// database lives in memory and disappears when the process exits.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alban-care/snake-game/pkg/game"
)

// Ledger records finished rounds.
type Ledger struct {
	db *sql.DB
}

// Summary aggregates every recorded round.
type Summary struct {
	Rounds       int     `json:"rounds"`
	BestScore    int     `json:"bestScore"`
	AverageScore float64 `json:"averageScore"`
	FoodEaten    int     `json:"foodEaten"`
}

// Round is a stored round.
type Round struct {
	ID        string        `json:"id"`
	Score     int           `json:"score"`
	FoodEaten int           `json:"foodEaten"`
	Ticks     int           `json:"ticks"`
	GridSize  int           `json:"gridSize"`
	StartedAt time.Time     `json:"startedAt"`
	EndedAt   time.Time     `json:"endedAt"`
	Duration  time.Duration `json:"durationNs"`
}

// Open creates an empty in-memory ledger.
func Open(ctx context.Context) (*Ledger, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE rounds (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		score       INTEGER NOT NULL,
		food_eaten  INTEGER NOT NULL,
		ticks       INTEGER NOT NULL,
		grid_size   INTEGER NOT NULL,
		started_at  INTEGER NOT NULL,
		ended_at    INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating rounds table: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close releases the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record stores a finished round.
func (l *Ledger) Record(ctx context.Context, r game.RoundResult) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO rounds (id, score, food_eaten, ticks, grid_size, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Score, r.FoodEaten, r.Ticks, r.GridSize,
		r.StartedAt.UnixMilli(), r.EndedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("recording round %s: %w", r.ID, err)
	}
	return nil
}

// Summary returns totals over all recorded rounds.
func (l *Ledger) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	err := l.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(MAX(score), 0),
		COALESCE(AVG(score), 0),
		COALESCE(SUM(food_eaten), 0)
	FROM rounds`).Scan(&s.Rounds, &s.BestScore, &s.AverageScore, &s.FoodEaten)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing rounds: %w", err)
	}
	return s, nil
}

// Recent returns up to n rounds, newest first.
func (l *Ledger) Recent(ctx context.Context, n int) ([]Round, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, score, food_eaten, ticks, grid_size, started_at, ended_at
		FROM rounds ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("listing rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var started, ended int64
		if err := rows.Scan(&r.ID, &r.Score, &r.FoodEaten, &r.Ticks, &r.GridSize, &started, &ended); err != nil {
			return nil, fmt.Errorf("scanning round: %w", err)
		}
		r.StartedAt = time.UnixMilli(started).UTC()
		r.EndedAt = time.UnixMilli(ended).UTC()
		r.Duration = r.EndedAt.Sub(r.StartedAt)
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing rounds: %w", err)
	}
	return rounds, nil
}
