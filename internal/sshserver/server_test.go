package sshserver

import (
	"bytes"
	"context"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gossh "golang.org/x/crypto/ssh"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/game"
)

type memRecorder struct{ entries []game.Result }

func (m *memRecorder) Record(_ context.Context, e game.Result) error {
	m.entries = append(m.entries, e)
	return nil
}

func startServer(t *testing.T, rec *memRecorder) string {
	t.Helper()
	cfg := config.Config{
		Game:  game.DefaultRules(),
		Color: config.ColorNever,
		SSH:   config.SSH{Addr: "127.0.0.1:0", HostKeyPath: filepath.Join(t.TempDir(), "host_key")},
	}
	s, err := New(cfg, rec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = s.Serve(ln) }()
	t.Cleanup(func() { _ = s.Close() })
	return ln.Addr().String()
}

func playOverSSH(t *testing.T, addr, input string) (string, error) {
	t.Helper()
	client, err := gossh.Dial("tcp", addr, &gossh.ClientConfig{
		User:            "tester",
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	sess, err := client.NewSession()
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	defer sess.Close()

	var out bytes.Buffer
	sess.Stdin = strings.NewReader(input)
	sess.Stdout = &out
	if err := sess.Shell(); err != nil {
		t.Fatalf("shell: %v", err)
	}
	err = sess.Wait()
	return out.String(), err
}

func TestSSHGameWin(t *testing.T) {
	rec := &memRecorder{}
	addr := startServer(t, rec)

	out, err := playOverSSH(t, addr, "world\nhello\n")
	if err != nil {
		t.Fatalf("session exit: %v\n%s", err, out)
	}
	if !strings.Contains(out, "You guessed it in 2 attempts!") {
		t.Errorf("output:\n%s", out)
	}
	if len(rec.entries) != 1 || rec.entries[0].Channel != "ssh" || rec.entries[0].Summary.State != game.StateWon {
		t.Errorf("recorded = %+v", rec.entries)
	}
}

func TestSSHClientLeaves(t *testing.T) {
	addr := startServer(t, &memRecorder{})

	out, err := playOverSSH(t, addr, "world\n")
	var exitErr *gossh.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitStatus() != 1 {
		t.Fatalf("want exit status 1, got %v\n%s", err, out)
	}
}
