// internal/console/session.go
//
// Interactive guessing loop over any line-oriented transport.
// Responsibilities:
//   - Prompt, read one line, hand it to game.Game.Submit.
//   - Print feedback, attempts remaining, and the terminal message.
//   - Re-prompt on wrong-length input without charging an attempt.
//   - Report the finished session to an optional Recorder.
//
// The same loop runs on stdin/stdout, a websocket and an SSH session.

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
)

// ErrInputClosed is returned when the input stream ends before the game does.
var ErrInputClosed = errors.New("console: input closed")

// Recorder persists finished sessions.
type Recorder interface {
	Record(ctx context.Context, e game.Result) error
}

// Options tune a Session. The zero value prints plain symbols and records nothing.
type Options struct {
	Color    bool     // ANSI-colored letters instead of symbol squares
	Channel  string   // transport name stored with history entries
	Recorder Recorder // optional
}

// Session is one interactive game.
type Session struct {
	rules game.Rules
	in    LineReader
	out   io.Writer
	opts  Options
	log   zerolog.Logger
}

// New constructs a Session reading from in and printing to out.
func New(rules game.Rules, in LineReader, out io.Writer, opts Options) *Session {
	if opts.Channel == "" {
		opts.Channel = "console"
	}
	return &Session{
		rules: rules,
		in:    in,
		out:   out,
		opts:  opts,
		log:   log.With().Str("component", "console").Str("channel", opts.Channel).Logger(),
	}
}

// Run plays one game to completion.
// It returns the final summary on Won, Lost or Quit, and an error if reading input
// fails (including end of input) or ctx is cancelled between guesses.
func (s *Session) Run(ctx context.Context) (game.Summary, error) {
	g := game.New(s.rules)
	s.log.Debug().Str("gameId", g.ID).Msg("session started")

	s.printf("Guess the %d-letter word. You have %d attempts. Type %q to give up.\n",
		game.WordLength, g.Rules.MaxAttempts, strings.ToLower(g.Rules.QuitWord))

	for {
		if err := ctx.Err(); err != nil {
			return g.Summary(), err
		}
		s.printf("Guess %d/%d: ", g.Attempts+1, g.Rules.MaxAttempts)

		line, err := s.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrInputClosed
			}
			return g.Summary(), fmt.Errorf("read guess: %w", err)
		}

		fb, state, err := g.Submit(line)
		switch {
		case errors.Is(err, game.ErrInvalidLength):
			s.printf("Please enter exactly %d letters.\n", game.WordLength)
			continue
		case err != nil:
			return g.Summary(), err
		}

		if state != game.StateQuit {
			s.printf("%s\n", Render(g.Guesses[len(g.Guesses)-1], fb, s.opts.Color))
		}
		switch state {
		case game.StateQuit:
			s.printf("Goodbye!\n")
		case game.StateWon:
			s.printf("You guessed it in %d %s!\n", g.Attempts, plural(g.Attempts, "attempt"))
		case game.StateLost:
			s.printf("Out of attempts. The word was %s.\n", g.Rules.Target)
		default:
			s.printf("%d %s remaining.\n", g.Remaining(), plural(g.Remaining(), "attempt"))
		}

		if state.Terminal() {
			sum := g.Summary()
			s.record(ctx, sum, g.StartedAt)
			s.log.Debug().Str("gameId", g.ID).Str("state", string(state)).Int("attempts", g.Attempts).Msg("session finished")
			return sum, nil
		}
	}
}

// record hands the summary to the Recorder; failures are logged, not returned.
func (s *Session) record(ctx context.Context, sum game.Summary, started time.Time) {
	if s.opts.Recorder == nil {
		return
	}
	err := s.opts.Recorder.Record(ctx, game.Result{
		Summary:    sum,
		Channel:    s.opts.Channel,
		StartedAt:  started,
		FinishedAt: time.Now(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("gameId", sum.GameID).Msg("record session")
	}
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
