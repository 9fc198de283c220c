// internal/game/engine.go
//
// Core game engine for a single guessing session.
// Responsibilities:
//   - Create new games from Rules.
//   - Normalize raw input and apply it (quit sentinel, length check, scoring).
//   - Score guesses with the two-pass, position-consuming algorithm.
//   - Track state transitions: playing → won/lost/quit.
//
// Notes:
//   - Any WordLength-character string is a valid guess; there is no word list.
//   - randomID() is a compact hex identifier for correlating sessions.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"
)

// New constructs a new game instance. Target and QuitWord are normalized.
func New(rules Rules) *Game {
	rules.Target = Normalize(rules.Target)
	rules.QuitWord = Normalize(rules.QuitWord)
	return &Game{
		ID:        randomID(),
		Rules:     rules,
		Guesses:   []string{},
		StartedAt: time.Now(),
	}
}

// Normalize trims surrounding whitespace and uppercases s.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidLength reports whether the normalized word has exactly WordLength characters.
func ValidLength(word string) bool {
	return utf8.RuneCountInString(word) == WordLength
}

// Submit validates and applies one line of raw input, mutating the game state.
// Returns: the per-letter feedback, the resulting state, or an error.
//
// Order of checks:
//   - Game must not be finished (ErrFinished).
//   - Normalized input equal to the quit sentinel → StateQuit, no attempt charged.
//   - Normalized input of the wrong length → ErrInvalidLength, no attempt charged.
//
// State transitions for a scored guess:
//   - Guess equals the target → Finished, Won (regardless of attempts left).
//   - Else attempts reach MaxAttempts → Finished (loss).
func (g *Game) Submit(raw string) (Feedback, State, error) {
	var fb Feedback
	if g.Finished {
		return fb, g.State(), ErrFinished
	}
	guess := Normalize(raw)
	if g.Rules.QuitWord != "" && guess == g.Rules.QuitWord {
		g.Finished, g.Quit = true, true
		return fb, g.State(), nil
	}
	if !ValidLength(guess) {
		return fb, g.State(), ErrInvalidLength
	}

	g.Attempts++
	g.Guesses = append(g.Guesses, guess)
	fb = Score(guess, g.Rules.Target)

	if guess == g.Rules.Target {
		g.Finished, g.Won = true, true
	} else if g.Attempts >= g.Rules.MaxAttempts {
		g.Finished = true
	}
	return fb, g.State(), nil
}

// Remaining reports how many guesses are left before the game is lost.
func (g *Game) Remaining() int {
	if n := g.Rules.MaxAttempts - g.Attempts; n > 0 {
		return n
	}
	return 0
}

// State reports the coarse state of the game.
func (g *Game) State() State {
	switch {
	case !g.Finished:
		return StatePlaying
	case g.Quit:
		return StateQuit
	case g.Won:
		return StateWon
	default:
		return StateLost
	}
}

// Score compares a guess against the target in two passes.
//
// Pass 1:
//   - Mark exact matches and consume those target positions.
//
// Pass 2:
//   - For each remaining guess letter, consume the leftmost unconsumed target
//     position holding the same letter and mark Present; otherwise mark Absent.
//
// Both words are expected to be normalized and WordLength long. Positions past the
// end of a shorter input are Absent.
func Score(guess, target string) Feedback {
	g, t := letters(guess), letters(target)

	var fb Feedback
	var consumed [WordLength]bool

	for i := 0; i < WordLength; i++ {
		if g[i] != 0 && g[i] == t[i] {
			fb[i] = MarkExact
			consumed[i] = true
		}
	}

	for i := 0; i < WordLength; i++ {
		if fb[i] == MarkExact {
			continue
		}
		fb[i] = MarkAbsent
		if g[i] == 0 {
			continue
		}
		for j := 0; j < WordLength; j++ {
			if !consumed[j] && t[j] == g[i] {
				fb[i] = MarkPresent
				consumed[j] = true
				break
			}
		}
	}
	return fb
}

// letters copies up to WordLength runes of s into a fixed array; missing
// positions stay zero.
func letters(s string) [WordLength]rune {
	var out [WordLength]rune
	i := 0
	for _, r := range s {
		if i == WordLength {
			break
		}
		out[i] = r
		i++
	}
	return out
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
