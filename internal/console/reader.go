// internal/console/reader.go
//
// Line sources for the console loop.
// LineReader is satisfied by the bufio.Scanner wrapper below (stdin, plain SSH
// sessions) and by *term.Terminal from golang.org/x/term (SSH ptys).

package console

import (
	"bufio"
	"io"
)

// LineReader yields one line of input per call, without the trailing newline.
// Implementations return io.EOF once the source is exhausted.
//
// *term.Terminal from golang.org/x/term satisfies it directly.
type LineReader interface {
	ReadLine() (string, error)
}

type scanner struct{ sc *bufio.Scanner }

// NewLineReader reads newline-separated lines from r.
func NewLineReader(r io.Reader) LineReader {
	return &scanner{sc: bufio.NewScanner(r)}
}

func (s *scanner) ReadLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
