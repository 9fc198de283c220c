// internal/config/config.go
//
// Environment-driven configuration shared by every binary.
// Responsibilities:
//   - Load an optional .env file (godotenv), then read variables with defaults.
//   - Validate game rules (5-letter target, positive attempt limit, quit word
//     distinct from the target).
//   - Configure the global zerolog logger.
//
// Environment variables:
//   LOG_LEVEL, WORDLE_TARGET, WORDLE_MAX_ATTEMPTS, WORDLE_QUIT_WORD, WORDLE_COLOR,
//   HISTORY_DB, HTTP_ADDR, CLIENT_ORIGIN, SESSION_SECRET, SESSION_TTL,
//   SSH_ADDR, SSH_HOST_KEY, SPRITE_BACKEND, SPRITE_LABEL, SPRITE_TITLE,
//   SPRITE_MOVE_SPEED, SPRITE_TEXT_SIZE, SPRITE_WINDOW_WIDTH, SPRITE_WINDOW_HEIGHT.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/motion"
)

var (
	ErrInvalidTarget      = errors.New("config: target must be exactly 5 characters")
	ErrInvalidMaxAttempts = errors.New("config: max attempts must be positive")
	ErrQuitWordIsTarget   = errors.New("config: quit word must differ from the target")
	ErrInvalidColorMode   = errors.New("config: color must be auto, always or never")
	ErrInvalidBackend     = errors.New("config: sprite backend must be window or terminal")
)

// ColorMode selects ANSI coloring of console feedback.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Enabled resolves the mode for an output that is (or is not) a terminal.
func (m ColorMode) Enabled(isTerminal bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

// Sprite backends.
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// Config is the full set of runtime settings.
type Config struct {
	LogLevel   string
	Game       game.Rules
	Color      ColorMode
	HistoryDSN string // empty disables session history
	HTTP       HTTP
	SSH        SSH
	Sprite     Sprite
}

// HTTP settings for cmd/wordle-server.
type HTTP struct {
	Addr          string
	ClientOrigin  string
	SessionSecret string
	SessionTTL    time.Duration
}

// SSH settings for cmd/wordle-ssh.
type SSH struct {
	Addr        string
	HostKeyPath string
}

// Sprite settings for cmd/sprite.
type Sprite struct {
	Backend      string
	Label        string
	Title        string
	Params       motion.Params
	WindowWidth  int
	WindowHeight int
}

// Load reads .env (if present) and the process environment into a validated Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	var (
		cfg Config
		err error
	)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.Game = game.Rules{
		Target:   game.Normalize(getEnv("WORDLE_TARGET", game.DefaultTarget)),
		QuitWord: game.Normalize(getEnv("WORDLE_QUIT_WORD", game.DefaultQuitWord)),
	}
	if cfg.Game.MaxAttempts, err = envInt("WORDLE_MAX_ATTEMPTS", game.DefaultMaxAttempts); err != nil {
		return cfg, err
	}
	if !game.ValidLength(cfg.Game.Target) {
		return cfg, fmt.Errorf("%w: %q", ErrInvalidTarget, cfg.Game.Target)
	}
	if cfg.Game.MaxAttempts <= 0 {
		return cfg, fmt.Errorf("%w: %d", ErrInvalidMaxAttempts, cfg.Game.MaxAttempts)
	}
	// Submit checks the quit word first, so a matching target could never be won.
	if cfg.Game.QuitWord == cfg.Game.Target {
		return cfg, fmt.Errorf("%w: %q", ErrQuitWordIsTarget, cfg.Game.QuitWord)
	}

	switch cfg.Color = ColorMode(getEnv("WORDLE_COLOR", string(ColorAuto))); cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return cfg, fmt.Errorf("%w: %q", ErrInvalidColorMode, cfg.Color)
	}

	cfg.HistoryDSN = os.Getenv("HISTORY_DB")

	cfg.HTTP = HTTP{
		Addr:          getEnv("HTTP_ADDR", ":5175"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
	}
	if cfg.HTTP.SessionTTL, err = envDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return cfg, err
	}

	cfg.SSH = SSH{
		Addr:        getEnv("SSH_ADDR", ":2222"),
		HostKeyPath: getEnv("SSH_HOST_KEY", ".ssh/wordle_host_key"),
	}

	cfg.Sprite = Sprite{
		Backend: getEnv("SPRITE_BACKEND", BackendWindow),
		Label:   getEnv("SPRITE_LABEL", "Hello World"),
		Title:   getEnv("SPRITE_TITLE", "Word Game"),
	}
	if cfg.Sprite.Backend != BackendWindow && cfg.Sprite.Backend != BackendTerminal {
		return cfg, fmt.Errorf("%w: %q", ErrInvalidBackend, cfg.Sprite.Backend)
	}
	def := motion.DefaultParams()
	if cfg.Sprite.Params.MoveSpeed, err = envFloat("SPRITE_MOVE_SPEED", def.MoveSpeed); err != nil {
		return cfg, err
	}
	if cfg.Sprite.Params.TextSize, err = envFloat("SPRITE_TEXT_SIZE", def.TextSize); err != nil {
		return cfg, err
	}
	if cfg.Sprite.WindowWidth, err = envInt("SPRITE_WINDOW_WIDTH", 800); err != nil {
		return cfg, err
	}
	if cfg.Sprite.WindowHeight, err = envInt("SPRITE_WINDOW_HEIGHT", 600); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ConfigureLogging applies the log level and, for interactive binaries, routes the
// global logger through a human-readable writer on w.
func ConfigureLogging(level string, w io.Writer, console bool) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}

func envFloat(k string, def float64) (float64, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("config: %s: %w", k, err)
	}
	return f, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("config: %s: %w", k, err)
	}
	return d, nil
}
