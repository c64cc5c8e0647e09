package factory

import (
	"log/slog"

	"github.com/ramusita/chitgame/internal/api"
	"github.com/ramusita/chitgame/internal/config"
	"github.com/ramusita/chitgame/internal/services/auth"
	"github.com/ramusita/chitgame/internal/services/game"
	"github.com/ramusita/chitgame/internal/services/maintenance"
	"github.com/ramusita/chitgame/internal/services/ratelimit"
	"github.com/ramusita/chitgame/internal/services/scoring"
	redisstorage "github.com/ramusita/chitgame/internal/storage/redis"
)

// ConfigFromEnv maps the server's environment settings onto factory Config
func ConfigFromEnv(env config.Server, logger *slog.Logger) Config {
	gameCfg := game.DefaultConfig()
	if env.Roles != nil {
		gameCfg.Roles = env.Roles
	}
	gameCfg.MinRounds = env.MinRounds
	gameCfg.MaxRounds = env.MaxRounds
	gameCfg.MaxActivePerCreator = env.MaxActiveMatches
	gameCfg.IdleTTL = env.MatchIdleTTL
	gameCfg.FinishedTTL = env.MatchFinishedTTL

	rule := func(limit int) ratelimit.Rule {
		return ratelimit.Rule{Limit: limit, Window: env.Rates.Window}
	}

	limiterCfg := ratelimit.DefaultConfig()
	if w := 2 * env.Rates.Window; w > limiterCfg.IdleAfter {
		limiterCfg.IdleAfter = w
	}

	cfg := Config{
		Logger:      logger,
		StorageType: env.StorageType,
		Auth:        auth.Config{SessionTTL: env.SessionTTL},
		Game:        gameCfg,
		Scoring: &scoring.Config{
			SeekerSuccessReward: env.Scoring.SeekerSuccess,
			TargetEvadedReward:  env.Scoring.TargetEvaded,
			TargetSafeReward:    env.Scoring.TargetSafe,
		},
		Limiter:     limiterCfg,
		Maintenance: maintenance.Config{Interval: env.CleanupInterval},
		Rates: api.RateRules{
			Create: rule(env.Rates.Create),
			Join:   rule(env.Rates.Join),
			Start:  rule(env.Rates.Start),
			Guess:  rule(env.Rates.Guess),
		},
	}

	if env.StorageType == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = env.RedisURL
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}
