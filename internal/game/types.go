// internal/game/types.go
//
// Core type definitions for the word game engine.
// Defines:
//   - Mark: per-letter result of a guess (exact/present/absent).
//   - Feedback: the five marks for one guess, aligned with the guess letters.
//   - State: coarse session state (playing/won/lost/quit).
//   - Rules: the tunable constants of a session.
//   - Game: state for a single in-progress or finished session.

package game

import (
	"errors"
	"time"
)

// WordLength is the number of letters in every guess and target.
const WordLength = 5

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "exact":   letter is correct and in the correct position.
//   - "present": letter exists in the target at another unconsumed position.
//   - "absent":  letter is matched by neither rule.
type Mark string

const (
	MarkExact   Mark = "exact"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Feedback holds one Mark per guess position.
type Feedback [WordLength]Mark

// Solved reports whether every position is MarkExact.
func (f Feedback) Solved() bool {
	for _, m := range f {
		if m != MarkExact {
			return false
		}
	}
	return true
}

// State is the coarse lifecycle state of a Game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
	StateQuit    State = "quit"
)

// Terminal reports whether no further guesses are accepted in s.
func (s State) Terminal() bool { return s != StatePlaying }

// Rules are the per-session constants. Target and QuitWord are stored normalized.
type Rules struct {
	Target      string
	MaxAttempts int
	QuitWord    string
}

// Default rules used when nothing is configured.
const (
	DefaultTarget      = "HELLO"
	DefaultMaxAttempts = 6
	DefaultQuitWord    = "QUIT"
)

// DefaultRules returns the stock rules.
func DefaultRules() Rules {
	return Rules{Target: DefaultTarget, MaxAttempts: DefaultMaxAttempts, QuitWord: DefaultQuitWord}
}

var (
	// ErrInvalidLength is returned for a normalized guess that is not WordLength letters.
	// No attempt is charged.
	ErrInvalidLength = errors.New("guess must be exactly 5 characters")
	// ErrFinished is returned when submitting to a game in a terminal state.
	ErrFinished = errors.New("game finished")
)

// Game holds the state of a single guessing session.
type Game struct {
	ID       string   // Unique game identifier (random hex string).
	Rules    Rules    // Target, attempt limit and quit sentinel.
	Attempts int      // Valid guesses charged so far.
	Guesses  []string // Normalized guesses in order.
	Finished bool     // True once the game reached a terminal state.
	Won      bool     // True if the game was finished with a win.
	Quit     bool     // True if the player left with the quit sentinel.

	StartedAt time.Time
}

// Summary is a snapshot of a game for reporting and history.
type Summary struct {
	GameID   string
	Target   string
	State    State
	Attempts int
	Guesses  []string
}

// Result is a finished session as reported by the transport that ran it.
type Result struct {
	Summary    Summary
	Channel    string // "console", "ws", "ssh", "http"
	StartedAt  time.Time
	FinishedAt time.Time
}

// Summary returns a copy of the reportable fields of g.
func (g *Game) Summary() Summary {
	return Summary{
		GameID:   g.ID,
		Target:   g.Rules.Target,
		State:    g.State(),
		Attempts: g.Attempts,
		Guesses:  append([]string(nil), g.Guesses...),
	}
}
