package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/ramusita/chitgame/internal/api/apierr"
	"github.com/ramusita/chitgame/internal/fingerprint"
	"github.com/ramusita/chitgame/internal/services/ratelimit"
)

// RateLimit throttles an action per client. The key is
// "<action>:<client fingerprint>".
func RateLimit(limiter *ratelimit.Limiter, action string, rule ratelimit.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := limiter.Check(r.Context(), action+":"+ClientKey(r), rule); err != nil {
				apierr.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey returns the hashed identity of the calling client. Raw
// addresses never leave this function.
func ClientKey(r *http.Request) string {
	return fingerprint.Of(clientIP(r))
}

// clientIP takes the first X-Forwarded-For hop, falling back to RemoteAddr
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
