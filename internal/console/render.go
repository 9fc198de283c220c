// internal/console/render.go
//
// Feedback rendering for one scored guess.
// Responsibilities:
//   - Map marks to symbol squares (exact/present/absent).
//   - Plain output: the guess followed by its squares.
//   - Colored output: each letter on an ANSI background for its mark.

package console

import (
	"strings"

	"github.com/robalobadob/wordle/internal/game"
)

// Feedback symbols, one per position.
const (
	SymbolExact   = "🟩"
	SymbolPresent = "🟨"
	SymbolAbsent  = "⬜"
)

// ANSI background colors for the colored rendering.
const (
	ansiReset   = "\033[0m"
	ansiExact   = "\033[30;42m"
	ansiPresent = "\033[30;43m"
	ansiAbsent  = "\033[97;100m"
)

// Symbol returns the square for a single mark.
func Symbol(m game.Mark) string {
	switch m {
	case game.MarkExact:
		return SymbolExact
	case game.MarkPresent:
		return SymbolPresent
	default:
		return SymbolAbsent
	}
}

// Symbols renders the feedback as one square per position.
func Symbols(fb game.Feedback) string {
	var b strings.Builder
	for _, m := range fb {
		b.WriteString(Symbol(m))
	}
	return b.String()
}

// Render formats a scored guess. Plain output is the guess followed by its
// squares; colored output paints each letter with its mark.
func Render(guess string, fb game.Feedback, color bool) string {
	if !color {
		return guess + "  " + Symbols(fb)
	}
	var b strings.Builder
	i := 0
	for _, r := range guess {
		if i >= len(fb) {
			break
		}
		switch fb[i] {
		case game.MarkExact:
			b.WriteString(ansiExact)
		case game.MarkPresent:
			b.WriteString(ansiPresent)
		default:
			b.WriteString(ansiAbsent)
		}
		b.WriteByte(' ')
		b.WriteRune(r)
		b.WriteByte(' ')
		b.WriteString(ansiReset)
		i++
	}
	return b.String()
}
