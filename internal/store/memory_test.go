package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/wordle/internal/game"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(game.DefaultRules())

	if _, err := s.Get(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Save: err = %v", err)
	}
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Get(ctx, g.ID)
	if err != nil || got.ID != g.ID {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got == g {
		t.Error("Get returned the stored game, want a copy")
	}

	if err := s.Update(ctx, g.ID, func(g *game.Game) error {
		_, _, err := g.Submit("world")
		return err
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if g.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", g.Attempts)
	}
	if err := s.Update(ctx, "missing", func(*game.Game) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing: err = %v", err)
	}

	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete: err = %v", err)
	}
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(game.Rules{Target: "HELLO", MaxAttempts: 100, QuitWord: "QUIT"})
	_ = s.Save(ctx, g)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, g.ID, func(g *game.Game) error {
				_, _, err := g.Submit("world")
				return err
			})
		}()
	}
	wg.Wait()
	if g.Attempts != 50 {
		t.Errorf("attempts = %d, want 50", g.Attempts)
	}
}

func TestMemoryStoreGetIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(game.DefaultRules())
	_ = s.Save(ctx, g)

	snap, _ := s.Get(ctx, g.ID)
	snap.Guesses = append(snap.Guesses, "XXXXX")
	snap.Attempts = 4

	again, _ := s.Get(ctx, g.ID)
	if again.Attempts != 0 || len(again.Guesses) != 0 {
		t.Errorf("stored game changed through a snapshot: %+v", again)
	}
}

func TestMemoryStoreExpire(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()

	old := game.New(game.DefaultRules())
	old.StartedAt = now.Add(-2 * time.Hour)
	fresh := game.New(game.DefaultRules())
	_ = s.Save(ctx, old)
	_ = s.Save(ctx, fresh)

	n, err := s.Expire(ctx, now.Add(-time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("Expire = %d, %v; want 1", n, err)
	}
	if _, err := s.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("old game: err = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh game: %v", err)
	}
}
