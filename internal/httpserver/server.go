// internal/httpserver/server.go
//
// HTTP server wiring for the word game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/state.
//   - History endpoints (when enabled): GET /stats, GET /games/recent.
//   - Websocket play: GET /play/ws runs the console loop over a socket.
//
// Notes:
//   - POST /game/new returns a signed session token; the other game endpoints
//     require it as a Bearer token and act only on the game it names.
//   - CORS is origin-aware for a single configured origin.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/history"
	"github.com/robalobadob/wordle/internal/store"
)

// History is the subset of *history.Store the server uses.
type History interface {
	Record(ctx context.Context, e game.Result) error
	Stats(ctx context.Context) (history.Stats, error)
	Recent(ctx context.Context, limit int) ([]game.Result, error)
}

// Server bundles router, in-memory game store, and optional history.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	store    store.Store
	hist     History // nil disables history endpoints and recording
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
// hist may be nil.
func New(cfg config.Config, st store.Store, hist History) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, hist: hist}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // single-origin CORS

	// Websocket sessions outlive the request timeout.
	s.r.Get("/play/ws", s.handlePlayWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"wordle-go","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/state","/stats","/games/recent","/play/ws"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		// --- game ---
		r.Post("/game/new", s.handleNewGame)
		r.With(s.requireSession()).Post("/game/guess", s.handleGuess)
		r.With(s.requireSession()).Get("/game/state", s.handleState)

		// --- history ---
		r.Get("/stats", s.handleStats)
		r.Get("/games/recent", s.handleRecent)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.HTTP.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameRes is the payload of POST /game/new.
type newGameRes struct {
	GameID      string    `json:"gameId"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	MaxAttempts int       `json:"maxAttempts"`
	WordLength  int       `json:"wordLength"`
}

// handleNewGame creates a game in the store and returns its session token.
// Games older than the token lifetime are evicted first; no token can reach them.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	if n, err := s.store.Expire(r.Context(), time.Now().Add(-s.cfg.HTTP.SessionTTL)); err != nil {
		log.Warn().Err(err).Msg("expire games")
	} else if n > 0 {
		log.Debug().Int("evicted", n).Msg("expired games evicted")
	}

	g := game.New(s.cfg.Game)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(g.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Info().Str("gameId", g.ID).Msg("game created")
	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID:      g.ID,
		Token:       tok,
		ExpiresAt:   exp,
		MaxAttempts: g.Rules.MaxAttempts,
		WordLength:  game.WordLength,
	})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}
type guessRes struct {
	Marks     []game.Mark `json:"marks,omitempty"`
	State     game.State  `json:"state"`
	Attempts  int         `json:"attempts"`
	Remaining int         `json:"remaining"`
	Answer    string      `json:"answer,omitempty"` // revealed on loss
}

// handleGuess applies one guess to the session's game. Once the game ends it is
// recorded in history (best effort) and removed from the store.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var (
		res     guessRes
		summary game.Summary
		started time.Time
	)
	err := s.store.Update(r.Context(), sessionGameID(r), func(g *game.Game) error {
		fb, state, err := g.Submit(req.Guess)
		if err != nil {
			return err
		}
		res = guessRes{State: state, Attempts: g.Attempts, Remaining: g.Remaining()}
		if state != game.StateQuit {
			res.Marks = fb[:]
		}
		if state == game.StateLost {
			res.Answer = g.Rules.Target
		}
		summary, started = g.Summary(), g.StartedAt
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, game.ErrInvalidLength):
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "game_finished")
		return
	case err != nil:
		log.Error().Err(err).Msg("apply guess")
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}

	if res.State.Terminal() {
		s.record(r.Context(), "http", summary, started)
		if err := s.store.Delete(r.Context(), summary.GameID); err != nil {
			log.Warn().Err(err).Str("gameId", summary.GameID).Msg("delete finished game")
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// stateRes is the payload of GET /game/state.
type stateRes struct {
	State     game.State `json:"state"`
	Attempts  int        `json:"attempts"`
	Remaining int        `json:"remaining"`
	Guesses   []string   `json:"guesses"`
}

// handleState reports an in-progress game. Finished games are gone from the store.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), sessionGameID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(stateRes{
		State:     g.State(),
		Attempts:  g.Attempts,
		Remaining: g.Remaining(),
		Guesses:   g.Guesses,
	})
}

// ------------------------------ HISTORY ------------------------------------

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		writeError(w, http.StatusNotFound, "history_disabled")
		return
	}
	st, err := s.hist.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("history stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// recentRow is one entry of GET /games/recent.
type recentRow struct {
	ID         string     `json:"id"`
	Channel    string     `json:"channel"`
	Outcome    game.State `json:"outcome"`
	Attempts   int        `json:"attempts"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		writeError(w, http.StatusNotFound, "history_disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	entries, err := s.hist.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("history recent")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	out := make([]recentRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, recentRow{
			ID:         e.Summary.GameID,
			Channel:    e.Channel,
			Outcome:    e.Summary.State,
			Attempts:   e.Summary.Attempts,
			StartedAt:  e.StartedAt,
			FinishedAt: e.FinishedAt,
		})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// record stores a finished game; failures are logged and otherwise ignored.
func (s *Server) record(ctx context.Context, channel string, sum game.Summary, started time.Time) {
	if s.hist == nil {
		return
	}
	err := s.hist.Record(ctx, game.Result{
		Summary:    sum,
		Channel:    channel,
		StartedAt:  started,
		FinishedAt: time.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", sum.GameID).Msg("record game")
	}
}

// ------------------------------- small util --------------------------------

// writeError writes {"error": code} with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
