package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ramusita/chitgame/internal/api/handler"
	"github.com/ramusita/chitgame/internal/api/middleware"
	commonmw "github.com/ramusita/chitgame/internal/middleware"
	"github.com/ramusita/chitgame/internal/services/auth"
	"github.com/ramusita/chitgame/internal/services/game"
	"github.com/ramusita/chitgame/internal/services/ratelimit"
	"github.com/ramusita/chitgame/internal/sse"
)

// RateRules holds the per-action limits applied by the router
type RateRules struct {
	Create ratelimit.Rule
	Join   ratelimit.Rule
	Start  ratelimit.Rule
	Guess  ratelimit.Rule
}

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
	Limiter        *ratelimit.Limiter
	HubManager     *sse.HubManager
	Rates          RateRules
	CookieSecure   bool
}

// NewRouter creates a new API router with all routes configured. Rate
// limits run before authentication, which runs before the handler.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	matchHandler := handler.NewMatchHandler(cfg.GameController, cfg.AuthService, cfg.HubManager, cfg.CookieSecure, cfg.Logger)

	limit := func(action string, rule ratelimit.Rule, h http.Handler) http.Handler {
		return middleware.RateLimit(cfg.Limiter, action, rule)(h)
	}
	authMiddleware := middleware.Auth(cfg.AuthService)
	authed := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(commonmw.Logging(cfg.Logger))

	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	api.Handle("/matches", limit("create", cfg.Rates.Create, http.HandlerFunc(matchHandler.Create))).Methods(http.MethodPost)
	api.Handle("/matches/join", limit("join", cfg.Rates.Join, http.HandlerFunc(matchHandler.Join))).Methods(http.MethodPost)

	match := api.PathPrefix("/matches/{" + middleware.MatchIDVar + "}").Subrouter()
	match.Handle("/start", limit("start", cfg.Rates.Start, authed(matchHandler.Start))).Methods(http.MethodPost)
	match.Handle("/rounds/current/guess", limit("guess", cfg.Rates.Guess, authed(matchHandler.Guess))).Methods(http.MethodPost)
	match.Handle("/me", authed(matchHandler.Me)).Methods(http.MethodGet)
	match.Handle("/events", authed(matchHandler.Events)).Methods(http.MethodGet)

	return r
}
