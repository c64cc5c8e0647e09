// Package ratelimit throttles requests per key using fixed time windows.
//
// A window opens on the first request for a key and lasts a fixed number of
// seconds. Bursts straddling a window boundary can admit up to twice the
// limit; that is accepted.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/ramusita/chitgame/internal/dependencies/clock"
	"github.com/ramusita/chitgame/internal/model"
	"github.com/ramusita/chitgame/internal/storage"
)

// Rule is a limit per window for one action
type Rule struct {
	Limit  int
	Window time.Duration
}

// Config holds limiter settings
type Config struct {
	// IdleAfter is how long after its window opened a counter may be
	// swept. It must be at least the longest window in use.
	IdleAfter time.Duration
}

// DefaultConfig returns default limiter configuration
func DefaultConfig() Config {
	return Config{
		IdleAfter: 2 * time.Minute,
	}
}

// Limiter checks request rates against a counter store
type Limiter struct {
	counters  storage.CounterStore
	clock     clock.Clock
	idleAfter time.Duration
}

// New creates a Limiter
func New(counters storage.CounterStore, clock clock.Clock, cfg Config) *Limiter {
	if cfg.IdleAfter <= 0 {
		cfg.IdleAfter = DefaultConfig().IdleAfter
	}
	return &Limiter{
		counters:  counters,
		clock:     clock,
		idleAfter: cfg.IdleAfter,
	}
}

// CheckRate admits the request if key has fewer than limit requests in its
// current window, otherwise it returns an error wrapping
// model.ErrRateLimited.
func (l *Limiter) CheckRate(ctx context.Context, key string, limit int, window time.Duration) error {
	windowSeconds := int64(window / time.Second)
	if windowSeconds < 1 {
		windowSeconds = 1
	}

	_, admitted, err := l.counters.Hit(ctx, key, limit, windowSeconds, l.clock.Now().Unix())
	if err != nil {
		return err
	}
	if !admitted {
		return fmt.Errorf("%s: %w", key, model.ErrRateLimited)
	}
	return nil
}

// Check applies a Rule
func (l *Limiter) Check(ctx context.Context, key string, rule Rule) error {
	return l.CheckRate(ctx, key, rule.Limit, rule.Window)
}

// Sweep drops counters whose window opened more than IdleAfter ago. Such a
// counter would be reset on its next use anyway.
func (l *Limiter) Sweep(ctx context.Context) (int, error) {
	cutoff := l.clock.Now().Add(-l.idleAfter).Unix()
	return l.counters.DeleteIdleCounters(ctx, cutoff)
}
