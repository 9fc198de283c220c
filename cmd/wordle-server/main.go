// cmd/wordle-server/main.go
//
// HTTP server for the word game.
// Responsibilities:
//   - Load configuration and configure JSON logging.
//   - Open the sqlite session history when HISTORY_DB is set.
//   - Serve the game API and websocket play on HTTP_ADDR until SIGINT/SIGTERM.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/history"
	"github.com/robalobadob/wordle/internal/httpserver"
	"github.com/robalobadob/wordle/internal/store"
)

func main() {
	cfg, err := config.Load()
	config.ConfigureLogging(cfg.LogLevel, os.Stderr, false)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	var hist httpserver.History
	if cfg.HistoryDSN != "" {
		h, err := history.Open(cfg.HistoryDSN)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", cfg.HistoryDSN).Msg("failed to open history")
		}
		defer h.Close()
		hist = h
	}

	srv := httpserver.New(cfg, store.NewMemoryStore(), hist)
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	log.Info().Str("addr", cfg.HTTP.Addr).Bool("history", hist != nil).Msg("starting wordle-server")
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-done
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
