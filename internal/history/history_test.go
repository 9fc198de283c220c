package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/wordle/internal/game"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entry(id string, st game.State, attempts int, at time.Time) game.Result {
	return game.Result{
		Summary: game.Summary{
			GameID:   id,
			Target:   "HELLO",
			State:    st,
			Attempts: attempts,
			Guesses:  []string{"WORLD", "HELLO"}[:min(attempts, 2)],
		},
		Channel:    "console",
		StartedAt:  at.Add(-time.Minute),
		FinishedAt: at,
	}
}

func TestRecordAndStats(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	records := []game.Result{
		entry("a", game.StateWon, 2, base),
		entry("b", game.StateLost, 6, base.Add(time.Hour)),
		entry("c", game.StateWon, 3, base.Add(2*time.Hour)),
		entry("d", game.StateWon, 2, base.Add(3*time.Hour)),
		entry("e", game.StateQuit, 0, base.Add(-time.Hour)),
	}
	for _, e := range records {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record %s: %v", e.Summary.GameID, err)
		}
	}
	// Duplicate ids are ignored.
	if err := s.Record(ctx, records[0]); err != nil {
		t.Fatalf("duplicate Record: %v", err)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Played != 5 || st.Won != 3 || st.Lost != 1 || st.Quit != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.Streak != 2 {
		t.Errorf("streak = %d, want 2", st.Streak)
	}
	if st.Distribution[2] != 2 || st.Distribution[3] != 1 {
		t.Errorf("distribution = %v", st.Distribution)
	}
}

func TestRecent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	_ = s.Record(ctx, entry("old", game.StateLost, 6, base))
	_ = s.Record(ctx, entry("new", game.StateWon, 2, base.Add(time.Hour)))

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].Summary.GameID != "new" || got[1].Summary.GameID != "old" {
		t.Fatalf("recent order = %+v", got)
	}
	if got[0].Summary.State != game.StateWon || len(got[0].Summary.Guesses) != 2 {
		t.Errorf("newest = %+v", got[0].Summary)
	}
	if !got[0].FinishedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("finished at = %v", got[0].FinishedAt)
	}
}

func TestRecordRejectsPlaying(t *testing.T) {
	s := openTemp(t)
	err := s.Record(context.Background(), entry("p", game.StatePlaying, 1, time.Now()))
	if !errors.Is(err, ErrNotFinished) {
		t.Errorf("err = %v, want ErrNotFinished", err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		_ = s.Close()
	}
}
