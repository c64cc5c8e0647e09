package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ramusita/chitgame/internal/api/apierr"
	"github.com/ramusita/chitgame/internal/model"
	"github.com/ramusita/chitgame/internal/services/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// TokenCookie is the cookie carrying the player token for browser clients
const TokenCookie = "PLAYER_TOKEN"

// MatchIDVar is the route variable naming the match
const MatchIDVar = "matchID"

// Auth requires a token bound to the match named in the route
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			matchID := model.MatchID(mux.Vars(r)[MatchIDVar])
			session, err := authService.RequireValidSession(r.Context(), token, matchID)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken prefers the Authorization header over the cookie
func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// GetSession returns the authenticated session from the request context
func GetSession(ctx context.Context) *model.PlayerSession {
	session, _ := ctx.Value(sessionContextKey).(*model.PlayerSession)
	return session
}

// MustGetSession returns the authenticated session or panics
func MustGetSession(ctx context.Context) *model.PlayerSession {
	session := GetSession(ctx)
	if session == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return session
}
