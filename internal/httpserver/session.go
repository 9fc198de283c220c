// internal/httpserver/session.go
//
// Session tokens for the HTTP game endpoints.
// A token is an HS256 JWT carrying the game id ("gid"), issued by POST /game/new.
// Secret and lifetime come from SESSION_SECRET and SESSION_TTL.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ctxGameKey is the context key type for the session's game id.
type ctxGameKey struct{}

// signToken creates an HS256 JWT bound to gameID.
func (s *Server) signToken(gameID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.cfg.HTTP.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.HTTP.SessionSecret))
	return ss, exp, err
}

// parseToken validates a token and returns the game id it carries.
func (s *Server) parseToken(tokenStr string) (string, bool) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.HTTP.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", false
	}
	gid, _ := claims["gid"].(string)
	return gid, gid != ""
}

// requireSession enforces a valid session token and injects its game id into
// the request context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "missing_token")
				return
			}
			gid, ok := s.parseToken(tokenStr)
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxGameKey{}, gid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionGameID returns the game id placed in context by requireSession.
func sessionGameID(r *http.Request) string {
	gid, _ := r.Context().Value(ctxGameKey{}).(string)
	return gid
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
