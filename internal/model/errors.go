package model

import (
	"errors"
	"fmt"
)

// Error categories. Callers branch on these with errors.Is; every specific
// error below wraps exactly one of them.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrForbidden        = errors.New("forbidden")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrSessionInvalid   = errors.New("invalid or expired session")
	ErrInvalidArgument  = errors.New("invalid argument")
)

var (
	// Match errors
	ErrMatchNotFound       = fmt.Errorf("match not found: %w", ErrNotFound)
	ErrMatchAlreadyStarted = fmt.Errorf("match already started: %w", ErrInvalidState)
	ErrTooManyActive       = fmt.Errorf("too many active matches for this client: %w", ErrCapacityExceeded)
	ErrInvalidRoundCount   = fmt.Errorf("total rounds out of range: %w", ErrInvalidArgument)
	ErrInvalidPlayerName   = fmt.Errorf("player name must be 1-32 characters: %w", ErrInvalidArgument)

	// Player errors
	ErrPlayerNotFound = fmt.Errorf("player not in match: %w", ErrNotFound)
	ErrNotHost        = fmt.Errorf("only the host can start the match: %w", ErrForbidden)

	// Round errors
	ErrInsufficientPlayers = fmt.Errorf("need at least 3 players: %w", ErrInvalidState)
	ErrTooManyPlayers      = fmt.Errorf("more players than available roles: %w", ErrCapacityExceeded)
	ErrNoActiveRound       = fmt.Errorf("no active round: %w", ErrInvalidState)
	ErrNotExpectingGuess   = fmt.Errorf("not expecting a guess now: %w", ErrInvalidState)
	ErrNotSeeker           = fmt.Errorf("only the seeker can guess: %w", ErrForbidden)
)
