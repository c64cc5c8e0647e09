package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ramusita/chitgame/internal/dependencies/clock"
	"github.com/ramusita/chitgame/internal/dependencies/random"
	"github.com/ramusita/chitgame/internal/model"
	"github.com/ramusita/chitgame/internal/services/scoring"
)

const (
	// MatchCodeLength is the length of generated match codes
	MatchCodeLength = 6
	// MatchCodeAlphabet is the characters used in match codes (no 0/O, 1/I)
	MatchCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	maxCodeAttempts = 100
)

// Publisher receives a public snapshot after every state change. Publish is
// called with the match lock held and must not block.
type Publisher interface {
	Publish(snapshot model.Snapshot)
}

// NopPublisher discards snapshots
type NopPublisher struct{}

// Publish does nothing
func (NopPublisher) Publish(model.Snapshot) {}

// Config holds match rules
type Config struct {
	Roles               model.RoleTable
	MinPlayers          int
	MinRounds           int
	MaxRounds           int
	MaxActivePerCreator int
	MaxNameLength       int
	IdleTTL             time.Duration // eviction after inactivity, unfinished
	FinishedTTL         time.Duration // eviction after inactivity, finished
}

// DefaultConfig returns the stock match rules
func DefaultConfig() Config {
	return Config{
		Roles:               model.DefaultRoles(),
		MinPlayers:          3,
		MinRounds:           1,
		MaxRounds:           10,
		MaxActivePerCreator: 5,
		MaxNameLength:       32,
		IdleTTL:             60 * time.Minute,
		FinishedTTL:         30 * time.Minute,
	}
}

// JoinResult identifies the caller's seat after create or join
type JoinResult struct {
	MatchID  model.MatchID
	Code     model.MatchCode
	PlayerID model.PlayerID
}

// Controller owns every match and drives the round state machine. Each
// operation holds that match's lock from validation through publication.
type Controller struct {
	registry  *registry
	scoring   *scoring.Service
	publisher Publisher
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	cfg       Config
}

// NewController creates a new game Controller
func NewController(
	scoringService *scoring.Service,
	publisher Publisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Controller{
		registry:  newRegistry(),
		scoring:   scoringService,
		publisher: publisher,
		clock:     clock,
		random:    random,
		logger:    logger.With(slog.String("component", "game")),
		cfg:       cfg,
	}
}

// CreateMatch opens a lobby with the caller as host
func (c *Controller) CreateMatch(ctx context.Context, playerName string, totalRounds int, creatorKey string) (*JoinResult, error) {
	name, err := c.validateName(playerName)
	if err != nil {
		return nil, err
	}
	if totalRounds < c.cfg.MinRounds || totalRounds > c.cfg.MaxRounds {
		return nil, model.ErrInvalidRoundCount
	}

	now := c.clock.Now()
	host := &model.Player{
		ID:   model.PlayerID(uuid.NewString()),
		Name: name,
		Host: true,
	}
	m := model.NewMatch(model.MatchID(uuid.NewString()), "", totalRounds, creatorKey, now)
	m.Players = append(m.Players, host)
	e := &entry{match: m}

	// Hold the new match's lock across insertion so no other caller can
	// observe it before the first snapshot is published.
	e.mu.Lock()
	defer e.mu.Unlock()
	for attempt := 0; ; attempt++ {
		if attempt == maxCodeAttempts {
			return nil, fmt.Errorf("allocate match code: %w", model.ErrCapacityExceeded)
		}
		m.Code = model.MatchCode(c.random.String(MatchCodeLength, MatchCodeAlphabet))
		codeFree, err := c.registry.insert(e, c.cfg.MaxActivePerCreator)
		if err != nil {
			c.logger.Warn("match creation rejected",
				slog.String("reason", err.Error()),
			)
			return nil, err
		}
		if codeFree {
			break
		}
	}

	c.logger.Info("match created",
		slog.String("match_id", string(m.ID)),
		slog.String("code", string(m.Code)),
		slog.Int("total_rounds", totalRounds),
	)
	c.publish(m)

	return &JoinResult{MatchID: m.ID, Code: m.Code, PlayerID: host.ID}, nil
}

// JoinMatch adds a non-host player to a lobby. Codes match case-insensitively.
func (c *Controller) JoinMatch(ctx context.Context, code model.MatchCode, playerName string) (*JoinResult, error) {
	name, err := c.validateName(playerName)
	if err != nil {
		return nil, err
	}

	code = model.MatchCode(strings.ToUpper(strings.TrimSpace(string(code))))
	e, ok := c.registry.getByCode(code)
	if !ok {
		return nil, model.ErrMatchNotFound
	}

	var result *JoinResult
	err = c.locked(e, func(m *model.Match) error {
		if m.Status != model.MatchStatusLobby {
			return model.ErrMatchAlreadyStarted
		}

		p := &model.Player{ID: model.PlayerID(uuid.NewString()), Name: name}
		m.Players = append(m.Players, p)

		c.logger.Info("player joined",
			slog.String("match_id", string(m.ID)),
			slog.String("player_id", string(p.ID)),
			slog.Int("player_count", len(m.Players)),
		)
		c.publish(m)

		result = &JoinResult{MatchID: m.ID, Code: m.Code, PlayerID: p.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// StartMatch moves a lobby into round 1 and deals roles
func (c *Controller) StartMatch(ctx context.Context, matchID model.MatchID, requester model.PlayerID) error {
	return c.withMatch(matchID, func(m *model.Match) error {
		if p := m.GetPlayer(requester); p == nil || !p.Host {
			return model.ErrNotHost
		}
		if len(m.Players) < c.cfg.MinPlayers {
			return model.ErrInsufficientPlayers
		}
		if m.Status != model.MatchStatusLobby {
			return model.ErrMatchAlreadyStarted
		}
		if len(m.Players) > len(c.cfg.Roles) {
			return model.ErrTooManyPlayers
		}

		c.logger.Info("match started",
			slog.String("match_id", string(m.ID)),
			slog.Int("player_count", len(m.Players)),
		)
		m.Status = model.MatchStatusInRound
		return c.beginRound(m, 1)
	})
}

// MakeGuess records the seeker's guess, scores the round and either deals
// the next round or finishes the match.
func (c *Controller) MakeGuess(ctx context.Context, matchID model.MatchID, playerID, guessedID model.PlayerID) error {
	return c.withMatch(matchID, func(m *model.Match) error {
		round := m.CurrentRound()
		if round == nil {
			return model.ErrNoActiveRound
		}
		if round.Status != model.RoundStatusWaitingForSeeker {
			return model.ErrNotExpectingGuess
		}
		if round.SeekerID != playerID {
			return model.ErrNotSeeker
		}
		if m.GetPlayer(guessedID) == nil {
			return model.ErrPlayerNotFound
		}

		round.GuessedID = guessedID
		round.ScoreDelta = c.scoring.ScoreRound(round)
		for _, p := range m.Players {
			p.TotalScore += round.ScoreDelta[p.ID]
		}
		round.Status = model.RoundStatusCompleted
		m.Status = model.MatchStatusReveal

		c.logger.Info("round completed",
			slog.String("match_id", string(m.ID)),
			slog.Int("round", round.Number),
			slog.Bool("correct", round.GuessCorrect()),
		)
		c.publish(m)

		if m.HasMoreRounds() {
			m.Status = model.MatchStatusInRound
			return c.beginRound(m, m.CurrentRoundNumber+1)
		}

		m.Status = model.MatchStatusFinished
		c.registry.finished(m.CreatorKey)
		c.logger.Info("match finished",
			slog.String("match_id", string(m.ID)),
			slog.Int("rounds", m.TotalRounds),
		)
		c.publish(m)
		return nil
	})
}

// GetPlayerView returns the match as seen by one of its players
func (c *Controller) GetPlayerView(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.PlayerView, error) {
	var view model.PlayerView
	err := c.withMatch(matchID, func(m *model.Match) error {
		p := m.GetPlayer(playerID)
		if p == nil {
			return model.ErrPlayerNotFound
		}
		view = model.NewPlayerView(m, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// GetSnapshot returns the current public state of a match
func (c *Controller) GetSnapshot(ctx context.Context, matchID model.MatchID) (*model.Snapshot, error) {
	var snap model.Snapshot
	err := c.withMatch(matchID, func(m *model.Match) error {
		snap = model.NewSnapshot(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// MatchCount returns the number of live matches
func (c *Controller) MatchCount() int {
	return c.registry.len()
}

// CleanupExpiredMatches evicts matches idle past their TTL and returns their
// ids. Matches whose lock is held are busy, not idle, and are skipped.
func (c *Controller) CleanupExpiredMatches(ctx context.Context) []model.MatchID {
	var removed []model.MatchID
	for _, e := range c.registry.entries() {
		if !e.mu.TryLock() {
			continue
		}
		m := e.match
		ttl := c.cfg.IdleTTL
		if m.Status == model.MatchStatusFinished {
			ttl = c.cfg.FinishedTTL
		}
		if !e.removed && c.clock.Since(m.LastActivityAt) >= ttl {
			e.removed = true
			c.registry.remove(m, m.Status != model.MatchStatusFinished)
			removed = append(removed, m.ID)
		}
		e.mu.Unlock()
	}

	if len(removed) > 0 {
		c.logger.Info("evicted idle matches", slog.Int("count", len(removed)))
	}
	return removed
}

// beginRound creates round n and deals it. The caller holds the match lock
// and has already checked that the player count fits the role table.
func (c *Controller) beginRound(m *model.Match, n int) error {
	roles, err := c.cfg.Roles.ForPlayers(len(m.Players))
	if err != nil {
		return err
	}

	round := model.NewRound(n)
	m.Rounds[n] = round
	m.CurrentRoundNumber = n

	random.Shuffle(c.random, len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	for i, p := range m.Players {
		role := roles[i]
		round.Assignments[p.ID] = role
		if role.IsSeeker {
			round.SeekerID = p.ID
		}
		if role.IsTarget {
			round.TargetID = p.ID
		}
	}
	round.Status = model.RoundStatusWaitingForSeeker

	c.logger.Info("round dealt",
		slog.String("match_id", string(m.ID)),
		slog.Int("round", n),
	)
	c.publish(m)
	return nil
}

func (c *Controller) publish(m *model.Match) {
	m.Touch(c.clock.Now())
	c.publisher.Publish(model.NewSnapshot(m))
}

func (c *Controller) withMatch(id model.MatchID, fn func(m *model.Match) error) error {
	e, ok := c.registry.get(id)
	if !ok {
		return model.ErrMatchNotFound
	}
	return c.locked(e, fn)
}

func (c *Controller) locked(e *entry, fn func(m *model.Match) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return model.ErrMatchNotFound
	}
	return fn(e.match)
}

func (c *Controller) validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > c.cfg.MaxNameLength {
		return "", model.ErrInvalidPlayerName
	}
	return name, nil
}
