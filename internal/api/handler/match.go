package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ramusita/chitgame/internal/api/apierr"
	"github.com/ramusita/chitgame/internal/api/middleware"
	"github.com/ramusita/chitgame/internal/api/request"
	"github.com/ramusita/chitgame/internal/api/response"
	"github.com/ramusita/chitgame/internal/model"
	"github.com/ramusita/chitgame/internal/services/auth"
	"github.com/ramusita/chitgame/internal/services/game"
	"github.com/ramusita/chitgame/internal/sse"
)

// MatchHandler handles match endpoints
type MatchHandler struct {
	controller   *game.Controller
	authService  *auth.Service
	hubManager   *sse.HubManager
	cookieSecure bool
	logger       *slog.Logger
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(controller *game.Controller, authService *auth.Service, hubManager *sse.HubManager, cookieSecure bool, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{
		controller:   controller,
		authService:  authService,
		hubManager:   hubManager,
		cookieSecure: cookieSecure,
		logger:       logger.With(slog.String("component", "api")),
	}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	seat, err := h.controller.CreateMatch(r.Context(), req.PlayerName, req.TotalRounds, middleware.ClientKey(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.issueSeat(w, r, seat, http.StatusCreated)
}

// Join handles POST /api/v1/matches/join
func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		WriteError(w, apierr.NewInvalidRequestError("code is required"))
		return
	}

	seat, err := h.controller.JoinMatch(r.Context(), model.MatchCode(req.Code), req.PlayerName)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.issueSeat(w, r, seat, http.StatusOK)
}

// issueSeat mints the player's token and returns it in the body and cookie
func (h *MatchHandler) issueSeat(w http.ResponseWriter, r *http.Request, seat *game.JoinResult, status int) {
	session, err := h.authService.CreateSession(r.Context(), seat.MatchID, seat.PlayerID)
	if err != nil {
		h.logger.Error("failed to issue player session",
			slog.String("match_id", string(seat.MatchID)),
			slog.String("player_id", string(seat.PlayerID)),
			slog.Any("error", err))
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, status, response.SeatFromSession(seat.Code, session))
}

// Start handles POST /api/v1/matches/{matchID}/start
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	if err := h.controller.StartMatch(r.Context(), session.MatchID, session.PlayerID); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Guess handles POST /api/v1/matches/{matchID}/rounds/current/guess
func (h *MatchHandler) Guess(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.GuessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.GuessedPlayerID == "" {
		WriteError(w, apierr.NewInvalidRequestError("guessed_player_id is required"))
		return
	}

	err := h.controller.MakeGuess(r.Context(), session.MatchID, session.PlayerID, model.PlayerID(req.GuessedPlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Me handles GET /api/v1/matches/{matchID}/me
func (h *MatchHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	view, err := h.controller.GetPlayerView(r.Context(), session.MatchID, session.PlayerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// Events handles GET /api/v1/matches/{matchID}/events
func (h *MatchHandler) Events(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	matchID := model.MatchID(mux.Vars(r)[middleware.MatchIDVar])

	if _, err := h.controller.GetSnapshot(r.Context(), matchID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(matchID)
	sse.ServeSSE(w, r, hub, session.PlayerID, func() ([]byte, error) {
		snapshot, err := h.controller.GetSnapshot(r.Context(), matchID)
		if err != nil {
			return nil, err
		}
		return sse.EncodeSnapshot(*snapshot)
	})
}
