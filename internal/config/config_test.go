package config

import (
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/wordle/internal/game"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{
		"LOG_LEVEL", "WORDLE_TARGET", "WORDLE_MAX_ATTEMPTS", "WORDLE_QUIT_WORD", "WORDLE_COLOR",
		"HISTORY_DB", "HTTP_ADDR", "SESSION_TTL", "SPRITE_BACKEND", "SPRITE_MOVE_SPEED",
		"SPRITE_TEXT_SIZE", "SPRITE_WINDOW_WIDTH", "SPRITE_WINDOW_HEIGHT", "SPRITE_TITLE",
	} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Game.Target != "HELLO" || cfg.Game.MaxAttempts != 6 || cfg.Game.QuitWord != "QUIT" {
		t.Errorf("game rules = %+v", cfg.Game)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("color = %q", cfg.Color)
	}
	if cfg.HistoryDSN != "" {
		t.Errorf("history should be disabled by default, got %q", cfg.HistoryDSN)
	}
	if cfg.HTTP.SessionTTL != 24*time.Hour {
		t.Errorf("session ttl = %v", cfg.HTTP.SessionTTL)
	}
	if cfg.Sprite.Params.MoveSpeed != 5 || cfg.Sprite.Params.TextSize != 48 {
		t.Errorf("sprite params = %+v", cfg.Sprite.Params)
	}
	if cfg.Sprite.Title != "Word Game" {
		t.Errorf("title = %q", cfg.Sprite.Title)
	}
	if cfg.Sprite.WindowWidth != 800 || cfg.Sprite.WindowHeight != 600 {
		t.Errorf("window = %dx%d", cfg.Sprite.WindowWidth, cfg.Sprite.WindowHeight)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("WORDLE_TARGET", " crane ")
	t.Setenv("WORDLE_MAX_ATTEMPTS", "3")
	t.Setenv("WORDLE_QUIT_WORD", "exit")
	t.Setenv("SPRITE_BACKEND", "terminal")
	t.Setenv("SPRITE_MOVE_SPEED", "2.5")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Game.Target != "CRANE" || cfg.Game.MaxAttempts != 3 || cfg.Game.QuitWord != "EXIT" {
		t.Errorf("game rules = %+v", cfg.Game)
	}
	if cfg.Sprite.Backend != BackendTerminal || cfg.Sprite.Params.MoveSpeed != 2.5 {
		t.Errorf("sprite = %+v", cfg.Sprite)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		key, val string
		want     error
	}{
		{"WORDLE_TARGET", "toolong", ErrInvalidTarget},
		{"WORDLE_MAX_ATTEMPTS", "0", ErrInvalidMaxAttempts},
		{"WORDLE_COLOR", "rainbow", ErrInvalidColorMode},
		{"SPRITE_BACKEND", "opengl", ErrInvalidBackend},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := FromEnv(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromEnvQuitWordIsTarget(t *testing.T) {
	t.Setenv("WORDLE_TARGET", "hello")
	t.Setenv("WORDLE_QUIT_WORD", " HELLO ")
	if _, err := FromEnv(); !errors.Is(err, ErrQuitWordIsTarget) {
		t.Fatalf("err = %v, want %v", err, ErrQuitWordIsTarget)
	}

	// A five-letter quit word that differs from the target is allowed.
	t.Setenv("WORDLE_QUIT_WORD", "leave")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if _, state, _ := game.New(cfg.Game).Submit("hello"); state != game.StateWon {
		t.Errorf("winning guess state = %s, want %s", state, game.StateWon)
	}
}

func TestFromEnvBadNumber(t *testing.T) {
	t.Setenv("WORDLE_MAX_ATTEMPTS", "six")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestColorModeEnabled(t *testing.T) {
	tests := []struct {
		mode ColorMode
		tty  bool
		want bool
	}{
		{ColorAuto, true, true},
		{ColorAuto, false, false},
		{ColorAlways, false, true},
		{ColorNever, true, false},
	}
	for _, tt := range tests {
		if got := tt.mode.Enabled(tt.tty); got != tt.want {
			t.Errorf("%s.Enabled(%v) = %v, want %v", tt.mode, tt.tty, got, tt.want)
		}
	}
}
