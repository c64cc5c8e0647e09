package scoring

import (
	"github.com/ramusita/chitgame/internal/model"
)

// Config holds the outcome rewards. They replace, rather than add to, the
// seeker's and target's base points.
type Config struct {
	SeekerSuccessReward int // seeker found the target
	TargetEvadedReward  int // target was found
	TargetSafeReward    int // seeker guessed wrong
}

// DefaultConfig returns the stock rewards
func DefaultConfig() Config {
	return Config{
		SeekerSuccessReward: 5000,
		TargetEvadedReward:  0,
		TargetSafeReward:    5000,
	}
}

// Service scores completed rounds
type Service struct {
	cfg Config
}

// New creates a scoring Service
func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// ScoreRound returns the per-player delta for a round whose guess has been
// recorded. Every player starts from their role's base points; the seeker
// and target are then overridden by the outcome.
func (s *Service) ScoreRound(round *model.Round) map[model.PlayerID]int {
	delta := make(map[model.PlayerID]int, len(round.Assignments))
	for playerID, role := range round.Assignments {
		delta[playerID] = role.Points
	}

	if round.GuessCorrect() {
		delta[round.SeekerID] = s.cfg.SeekerSuccessReward
		delta[round.TargetID] = s.cfg.TargetEvadedReward
	} else {
		delta[round.SeekerID] = 0
		delta[round.TargetID] = s.cfg.TargetSafeReward
	}

	return delta
}
