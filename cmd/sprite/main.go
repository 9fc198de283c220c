// cmd/sprite/main.go
//
// Sprite motion demo: arrow keys move a text label, clamped to the window.
// SPRITE_BACKEND picks an ebiten window ("window") or a tcell terminal ("terminal").

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/display/terminal"
	"github.com/robalobadob/wordle/internal/display/window"
)

func main() {
	cfg, err := config.Load()
	config.ConfigureLogging(cfg.LogLevel, os.Stderr, true)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	switch cfg.Sprite.Backend {
	case config.BackendTerminal:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = terminal.Run(ctx, cfg.Sprite)
	default:
		err = window.Run(cfg.Sprite)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Str("backend", cfg.Sprite.Backend).Msg("sprite demo failed")
	}
}
