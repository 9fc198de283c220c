// internal/httpserver/ws.go
//
// GET /play/ws: the console loop over a websocket.
// Each inbound text message is one line of input; every chunk the loop prints is
// sent as one text message. The socket is closed when the game ends.

package httpserver

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/console"
)

// wsConn adapts a websocket to console.LineReader and io.Writer.
type wsConn struct{ c *websocket.Conn }

func (w wsConn) ReadLine() (string, error) {
	_, msg, err := w.c.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return "", io.EOF
		}
		return "", err
	}
	return string(msg), nil
}

func (w wsConn) Write(p []byte) (int, error) {
	if err := w.c.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// checkOrigin accepts same-host requests, requests without an Origin header,
// and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.HTTP.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

func (s *Server) handlePlayWS(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error.
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer c.Close()

	conn := wsConn{c: c}
	opts := console.Options{Channel: "ws"}
	if s.hist != nil {
		opts.Recorder = s.hist
	}
	sess := console.New(s.cfg.Game, conn, conn, opts)
	sum, err := sess.Run(r.Context())
	if err != nil {
		log.Info().Err(err).Str("gameId", sum.GameID).Msg("websocket session ended early")
		return
	}
	_ = c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(sum.State)),
		time.Now().Add(time.Second))
}
