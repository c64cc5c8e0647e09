// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ramusita/chitgame/internal/model"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// RateLimits holds the per-action request limits. Each limit applies per
// client per Window.
type RateLimits struct {
	Create int           `env:"RATE_CREATE" envDefault:"10"`
	Join   int           `env:"RATE_JOIN" envDefault:"60"`
	Start  int           `env:"RATE_START" envDefault:"20"`
	Guess  int           `env:"RATE_GUESS" envDefault:"20"`
	Window time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

// Scoring holds the outcome rewards
type Scoring struct {
	SeekerSuccess int `env:"SCORE_SEEKER_SUCCESS" envDefault:"5000"`
	TargetEvaded  int `env:"SCORE_TARGET_EVADED" envDefault:"0"`
	TargetSafe    int `env:"SCORE_TARGET_SAFE" envDefault:"5000"`
}

// Server is the chit server's environment configuration
type Server struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`

	CleanupInterval  time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
	MatchIdleTTL     time.Duration `env:"MATCH_IDLE_TTL" envDefault:"60m"`
	MatchFinishedTTL time.Duration `env:"MATCH_FINISHED_TTL" envDefault:"30m"`
	MaxActiveMatches int           `env:"MAX_ACTIVE_MATCHES" envDefault:"5"`
	MinRounds        int           `env:"MIN_ROUNDS" envDefault:"1"`
	MaxRounds        int           `env:"MAX_ROUNDS" envDefault:"10"`

	Roles model.RoleTable `env:"CHIT_ROLES"`

	Scoring Scoring
	Rates   RateLimits
}

// LoadServer parses Server from the environment and validates it
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with
func (c Server) Validate() error {
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when STORAGE_TYPE=%s", StorageRedis)
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q", c.StorageType, StorageMemory, StorageRedis)
	}
	if c.MinRounds < 1 || c.MaxRounds < c.MinRounds {
		return fmt.Errorf("invalid round bounds %d..%d", c.MinRounds, c.MaxRounds)
	}
	if c.MaxActiveMatches < 1 {
		return fmt.Errorf("MAX_ACTIVE_MATCHES must be positive")
	}
	if c.SessionTTL <= 0 || c.Rates.Window <= 0 {
		return fmt.Errorf("SESSION_TTL and RATE_WINDOW must be positive")
	}
	if c.Roles != nil {
		if err := c.Roles.Validate(); err != nil {
			return fmt.Errorf("CHIT_ROLES: %w", err)
		}
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info
func (c Server) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
