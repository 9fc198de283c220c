// internal/sshserver/server.go
//
// SSH surface for the console game.
// Responsibilities:
//   - Build a wish server with request logging and a persistent host key.
//   - Run one console session per SSH session and set its exit status.
//
// Notes:
//   - Sessions with a pty get echo and line editing from golang.org/x/term and
//     follow window resizes; sessions without one read plain lines.

package sshserver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/console"
)

// New builds an SSH server listening on cfg.SSH.Addr. rec may be nil.
func New(cfg config.Config, rec console.Recorder) (*ssh.Server, error) {
	opts := []ssh.Option{
		wish.WithAddress(cfg.SSH.Addr),
		wish.WithMiddleware(
			gameMiddleware(cfg, rec),
			logging.Middleware(),
		),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}
	s, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	return s, nil
}

// gameMiddleware runs one console session per SSH session.
func gameMiddleware(cfg config.Config, rec console.Recorder) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			in, out, tty := sessionIO(sess)
			opts := console.Options{Channel: "ssh", Color: cfg.Color.Enabled(tty)}
			if rec != nil {
				opts.Recorder = rec
			}

			sum, err := console.New(cfg.Game, in, out, opts).Run(sess.Context())
			logger := log.With().Str("user", sess.User()).Str("gameId", sum.GameID).Logger()
			switch {
			case err == nil:
				logger.Info().Str("state", string(sum.State)).Int("attempts", sum.Attempts).Msg("ssh game finished")
				_ = sess.Exit(0)
			case errors.Is(err, console.ErrInputClosed), errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
				logger.Info().Msg("ssh client left mid-game")
				_ = sess.Exit(1)
			default:
				logger.Warn().Err(err).Msg("ssh game aborted")
				_ = sess.Exit(1)
			}
			next(sess)
		}
	}
}

// sessionIO picks the line reader and writer for a session. Pty sessions get a
// term.Terminal, which echoes input and translates newlines.
func sessionIO(sess ssh.Session) (console.LineReader, io.Writer, bool) {
	if pty, winCh, ok := sess.Pty(); ok {
		t := term.NewTerminal(sess, "")
		_ = t.SetSize(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				_ = t.SetSize(win.Width, win.Height)
			}
		}()
		return t, t, true
	}
	return console.NewLineReader(sess), sess, false
}
