package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ramusita/chitgame/internal/api/apierr"
	"github.com/ramusita/chitgame/internal/middleware"
)

// Recovery creates panic recovery middleware that answers with a JSON 500
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, errors.New("panic"))
}
