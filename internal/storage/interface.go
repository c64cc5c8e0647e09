package storage

import (
	"context"
	"time"

	"github.com/ramusita/chitgame/internal/model"
)

// SessionStore holds player sessions keyed by token
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.PlayerSession) error
	// GetSession returns model.ErrSessionInvalid when the token is unknown
	GetSession(ctx context.Context, token string) (*model.PlayerSession, error)
	DeleteSession(ctx context.Context, token string) error
	// DeleteExpiredSessions removes every session expired at now and
	// returns how many were removed
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// CounterStore holds fixed-window rate counters
type CounterStore interface {
	// Hit atomically resets the counter for key if its window has elapsed,
	// then admits and counts the request if the count is below limit.
	// now is epoch seconds.
	Hit(ctx context.Context, key string, limit int, windowSeconds int64, now int64) (model.RateCounter, bool, error)
	// DeleteIdleCounters removes counters whose window started before the
	// given epoch second and returns how many were removed
	DeleteIdleCounters(ctx context.Context, before int64) (int, error)
}

// Storage is the backing store for sessions and rate counters. Matches are
// held in memory by the game orchestrator and never pass through here.
type Storage interface {
	SessionStore
	CounterStore
	Close() error
}
