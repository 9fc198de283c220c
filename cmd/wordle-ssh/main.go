// cmd/wordle-ssh/main.go
//
// SSH server for the word game: `ssh -p 2222 localhost` plays one game.
// Responsibilities:
//   - Load configuration and configure JSON logging.
//   - Open the sqlite session history when HISTORY_DB is set.
//   - Serve on SSH_ADDR until SIGINT/SIGTERM, then shut down gracefully.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/console"
	"github.com/robalobadob/wordle/internal/history"
	"github.com/robalobadob/wordle/internal/sshserver"
)

func main() {
	cfg, err := config.Load()
	config.ConfigureLogging(cfg.LogLevel, os.Stderr, false)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	var rec console.Recorder
	if cfg.HistoryDSN != "" {
		h, err := history.Open(cfg.HistoryDSN)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", cfg.HistoryDSN).Msg("failed to open history")
		}
		defer h.Close()
		rec = h
	}

	s, err := sshserver.New(cfg, rec)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create ssh server")
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	log.Info().Str("addr", cfg.SSH.Addr).Str("hostKey", cfg.SSH.HostKeyPath).Msg("starting wordle-ssh")
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ssh server exited")
		}
	}()

	<-done
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
