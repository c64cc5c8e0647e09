package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/ramusita/chitgame/internal/api"
	"github.com/ramusita/chitgame/internal/dependencies/clock"
	"github.com/ramusita/chitgame/internal/dependencies/random"
	"github.com/ramusita/chitgame/internal/services/auth"
	"github.com/ramusita/chitgame/internal/services/game"
	"github.com/ramusita/chitgame/internal/services/maintenance"
	"github.com/ramusita/chitgame/internal/services/ratelimit"
	"github.com/ramusita/chitgame/internal/services/scoring"
	"github.com/ramusita/chitgame/internal/sse"
	"github.com/ramusita/chitgame/internal/storage"
	"github.com/ramusita/chitgame/internal/storage/memory"
	redisstorage "github.com/ramusita/chitgame/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock  clock.Clock
	Random random.Random

	ScoringService *scoring.Service
	GameController *game.Controller
	AuthService    *auth.Service
	Limiter        *ratelimit.Limiter
	HubManager     *sse.HubManager
	Sweeper        *maintenance.Sweeper

	Rates  api.RateRules
	Logger *slog.Logger
}

// Config holds configuration for the application factory. Zero-valued
// sections fall back to each package's defaults.
type Config struct {
	// Logger is the application logger. If nil, output is discarded.
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis").
	// If empty, defaults to "memory".
	StorageType string
	// RedisConfig is required if StorageType is "redis"
	RedisConfig *redisstorage.Config

	Auth        auth.Config
	Game        game.Config
	Scoring     *scoring.Config
	Limiter     ratelimit.Config
	Maintenance maintenance.Config
	Rates       api.RateRules
}

// DefaultRates returns the stock per-client request limits
func DefaultRates() api.RateRules {
	return api.RateRules{
		Create: ratelimit.Rule{Limit: 10, Window: time.Minute},
		Join:   ratelimit.Rule{Limit: 60, Window: time.Minute},
		Start:  ratelimit.Rule{Limit: 20, Window: time.Minute},
		Guess:  ratelimit.Rule{Limit: 20, Window: time.Minute},
	}
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config) *App {
	cfg = withDefaults(cfg)
	logger := cfg.Logger

	hubManager := sse.NewHubManager(logger)
	scoringService := scoring.New(*cfg.Scoring)
	gameController := game.NewController(scoringService, sse.NewPublisher(hubManager, logger), clk, rnd, logger, cfg.Game)
	authService := auth.New(store, clk, cfg.Auth)
	limiter := ratelimit.New(store, clk, cfg.Limiter)
	sweeper := maintenance.New(gameController, authService, limiter, hubManager, logger, cfg.Maintenance)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		ScoringService: scoringService,
		GameController: gameController,
		AuthService:    authService,
		Limiter:        limiter,
		HubManager:     hubManager,
		Sweeper:        sweeper,
		Rates:          cfg.Rates,
		Logger:         logger,
	}
}

func withDefaults(cfg Config) Config {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Auth.SessionTTL == 0 {
		cfg.Auth = auth.DefaultConfig()
	}
	if cfg.Game.MinPlayers == 0 {
		cfg.Game = game.DefaultConfig()
	}
	if cfg.Scoring == nil {
		d := scoring.DefaultConfig()
		cfg.Scoring = &d
	}
	if cfg.Rates == (api.RateRules{}) {
		cfg.Rates = DefaultRates()
	}
	return cfg
}

// Close releases the storage backend
func (a *App) Close() error {
	a.HubManager.CloseAll()
	return a.Storage.Close()
}
