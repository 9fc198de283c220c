// internal/history/history.go
//
// Finished-session history backed by SQLite.
// Each console, websocket, SSH or HTTP session that reaches a terminal state
// (won/lost/quit) is written once. In-progress games are never stored.

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/internal/game"
)

// ErrNotFinished is returned when recording a game that is still in play.
var ErrNotFinished = errors.New("history: game not finished")

// timeLayout sorts lexically in chronological order for UTC times.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Stats aggregates all recorded sessions.
type Stats struct {
	Played       int         `json:"played"`
	Won          int         `json:"won"`
	Lost         int         `json:"lost"`
	Quit         int         `json:"quit"`
	Streak       int         `json:"streak"`       // consecutive wins up to the latest session
	Distribution map[int]int `json:"distribution"` // wins keyed by attempts used
}

// Store wraps the history database.
type Store struct{ db *sql.DB }

// Open opens the database at dsn and applies migrations.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts a finished session. Re-recording the same game id is ignored.
func (s *Store) Record(ctx context.Context, e game.Result) error {
	if !e.Summary.State.Terminal() {
		return ErrNotFinished
	}
	guesses, err := json.Marshal(e.Summary.Guesses)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO sessions
            (id, channel, target, outcome, attempts, guesses, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Summary.GameID, e.Channel, e.Summary.Target, string(e.Summary.State),
		e.Summary.Attempts, string(guesses),
		e.StartedAt.UTC().Format(timeLayout), e.FinishedAt.UTC().Format(timeLayout),
	)
	return err
}

// Recent returns up to limit sessions, newest first. Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]game.Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, channel, target, outcome, attempts, guesses, started_at, finished_at
        FROM sessions
        ORDER BY finished_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]game.Result, 0, limit)
	for rows.Next() {
		var (
			e                 game.Result
			outcome, guesses  string
			started, finished string
		)
		if err := rows.Scan(&e.Summary.GameID, &e.Channel, &e.Summary.Target, &outcome,
			&e.Summary.Attempts, &guesses, &started, &finished); err != nil {
			return nil, err
		}
		e.Summary.State = game.State(outcome)
		if err := json.Unmarshal([]byte(guesses), &e.Summary.Guesses); err != nil {
			return nil, fmt.Errorf("decode guesses for %s: %w", e.Summary.GameID, err)
		}
		e.StartedAt, _ = time.Parse(timeLayout, started)
		e.FinishedAt, _ = time.Parse(timeLayout, finished)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Stats computes totals, the win distribution and the current win streak.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{Distribution: map[int]int{}}

	rows, err := s.db.QueryContext(ctx, `SELECT outcome, attempts FROM sessions ORDER BY finished_at DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	streakOpen := true
	for rows.Next() {
		var (
			outcome  string
			attempts int
		)
		if err := rows.Scan(&outcome, &attempts); err != nil {
			return st, err
		}
		st.Played++
		switch game.State(outcome) {
		case game.StateWon:
			st.Won++
			st.Distribution[attempts]++
			if streakOpen {
				st.Streak++
			}
		case game.StateLost:
			st.Lost++
			streakOpen = false
		case game.StateQuit:
			st.Quit++
			streakOpen = false
		}
	}
	return st, rows.Err()
}
