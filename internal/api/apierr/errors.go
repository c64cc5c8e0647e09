package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ramusita/chitgame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeNotHost              = "NOT_HOST"
	CodeNotSeeker            = "NOT_SEEKER"
	CodeForbidden            = "FORBIDDEN"
	CodeMatchNotFound        = "MATCH_NOT_FOUND"
	CodePlayerNotFound       = "PLAYER_NOT_FOUND"
	CodeNotFound             = "NOT_FOUND"
	CodeMatchAlreadyStarted  = "MATCH_ALREADY_STARTED"
	CodeInsufficientPlayers  = "INSUFFICIENT_PLAYERS"
	CodeNotExpectingGuess    = "NOT_EXPECTING_GUESS"
	CodeInvalidState         = "INVALID_STATE"
	CodeTooManyActiveMatches = "TOO_MANY_ACTIVE_MATCHES"
	CodeTooManyPlayers       = "TOO_MANY_PLAYERS"
	CodeCapacityExceeded     = "CAPACITY_EXCEEDED"
	CodeRateLimitExceeded    = "RATE_LIMIT_EXCEEDED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	if he.status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "60")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Specific errors are
// matched first so they keep their own code; the category fallbacks catch
// anything else wrapping the same sentinel.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not in this match"}}
	case errors.Is(err, model.ErrNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}

	case errors.Is(err, model.ErrMatchAlreadyStarted):
		return &httpError{http.StatusConflict, APIError{CodeMatchAlreadyStarted, "Match has already started"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrNotExpectingGuess), errors.Is(err, model.ErrNoActiveRound):
		return &httpError{http.StatusConflict, APIError{CodeNotExpectingGuess, "No guess is expected right now"}}
	case errors.Is(err, model.ErrInvalidState):
		return &httpError{http.StatusConflict, APIError{CodeInvalidState, err.Error()}}

	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can start the match"}}
	case errors.Is(err, model.ErrNotSeeker):
		return &httpError{http.StatusForbidden, APIError{CodeNotSeeker, "Only the seeker can guess"}}
	case errors.Is(err, model.ErrForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Forbidden"}}

	case errors.Is(err, model.ErrTooManyActive):
		return &httpError{http.StatusBadRequest, APIError{CodeTooManyActiveMatches, "Too many active matches for this client"}}
	case errors.Is(err, model.ErrTooManyPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeTooManyPlayers, "More players than available roles"}}
	case errors.Is(err, model.ErrCapacityExceeded):
		return &httpError{http.StatusBadRequest, APIError{CodeCapacityExceeded, err.Error()}}

	case errors.Is(err, model.ErrRateLimited):
		return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimitExceeded, "Too many requests"}}
	case errors.Is(err, model.ErrSessionInvalid):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, model.ErrInvalidArgument):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}
