// Package maintenance runs the periodic cleanup of matches, sessions, rate
// counters and idle event hubs.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/ramusita/chitgame/internal/services/auth"
	"github.com/ramusita/chitgame/internal/services/game"
	"github.com/ramusita/chitgame/internal/services/ratelimit"
	"github.com/ramusita/chitgame/internal/sse"
)

// Config holds sweeper settings
type Config struct {
	Interval time.Duration
}

// DefaultConfig returns default sweeper configuration
func DefaultConfig() Config {
	return Config{Interval: 10 * time.Minute}
}

// Report counts what one sweep removed
type Report struct {
	Matches  int
	Sessions int
	Counters int
	Hubs     int
}

// Sweeper periodically evicts expired state
type Sweeper struct {
	controller *game.Controller
	auth       *auth.Service
	limiter    *ratelimit.Limiter
	hubs       *sse.HubManager
	logger     *slog.Logger
	interval   time.Duration
}

// New creates a Sweeper
func New(controller *game.Controller, authService *auth.Service, limiter *ratelimit.Limiter, hubs *sse.HubManager, logger *slog.Logger, cfg Config) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Sweeper{
		controller: controller,
		auth:       authService,
		limiter:    limiter,
		hubs:       hubs,
		logger:     logger.With(slog.String("component", "maintenance")),
		interval:   cfg.Interval,
	}
}

// Run sweeps every interval until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", slog.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep. Storage failures are logged and the
// remaining steps still run.
func (s *Sweeper) RunOnce(ctx context.Context) Report {
	var report Report

	evicted := s.controller.CleanupExpiredMatches(ctx)
	report.Matches = len(evicted)
	for _, id := range evicted {
		s.hubs.RemoveHub(id)
	}

	sessions, err := s.auth.CleanExpiredSessions(ctx)
	if err != nil {
		s.logger.Warn("session sweep failed", slog.Any("error", err))
	}
	report.Sessions = sessions

	counters, err := s.limiter.Sweep(ctx)
	if err != nil {
		s.logger.Warn("rate counter sweep failed", slog.Any("error", err))
	}
	report.Counters = counters

	report.Hubs = s.hubs.CleanupEmptyHubs()

	if report != (Report{}) {
		s.logger.Info("sweep complete",
			slog.Int("matches", report.Matches),
			slog.Int("sessions", report.Sessions),
			slog.Int("counters", report.Counters),
			slog.Int("hubs", report.Hubs))
	}
	return report
}
