// main.go
//
// Console word game on stdin/stdout.
// Responsibilities:
//   - Load configuration (.env + environment) and configure logging on stderr.
//   - Optionally open the sqlite session history (HISTORY_DB).
//   - Play one game; exit 0 on win, loss or quit, non-zero on input failure.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/console"
	"github.com/robalobadob/wordle/internal/history"
)

func main() {
	cfg, err := config.Load()
	config.ConfigureLogging(cfg.LogLevel, os.Stderr, true)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	opts := console.Options{
		Channel: "console",
		Color:   cfg.Color.Enabled(term.IsTerminal(int(os.Stdout.Fd()))),
	}
	if cfg.HistoryDSN != "" {
		hist, err := history.Open(cfg.HistoryDSN)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", cfg.HistoryDSN).Msg("failed to open history")
		}
		defer hist.Close()
		opts.Recorder = hist
	}

	sum, err := console.New(cfg.Game, console.NewLineReader(os.Stdin), os.Stdout, opts).Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Str("gameId", sum.GameID).Msg("game aborted")
	}
	log.Debug().Str("gameId", sum.GameID).Str("state", string(sum.State)).Int("attempts", sum.Attempts).Msg("game over")
}
