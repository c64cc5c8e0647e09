package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// MatchCode is the short shareable code players use to join a match
type MatchCode string

// MatchStatus is the lifecycle state of a match
type MatchStatus string

const (
	MatchStatusLobby    MatchStatus = "LOBBY"
	MatchStatusInRound  MatchStatus = "IN_ROUND"
	MatchStatusReveal   MatchStatus = "REVEAL"
	MatchStatusFinished MatchStatus = "FINISHED"
)

// Match is the authoritative state of one game. It is not safe for
// concurrent use; the orchestrator serialises access per match.
type Match struct {
	ID                 MatchID
	Code               MatchCode
	Status             MatchStatus
	TotalRounds        int
	CurrentRoundNumber int
	Players            []*Player // join order
	Rounds             map[int]*Round
	CreatorKey         string
	CreatedAt          time.Time
	LastActivityAt     time.Time
}

// NewMatch returns a match in the lobby with no players.
func NewMatch(id MatchID, code MatchCode, totalRounds int, creatorKey string, now time.Time) *Match {
	return &Match{
		ID:             id,
		Code:           code,
		Status:         MatchStatusLobby,
		TotalRounds:    totalRounds,
		Rounds:         make(map[int]*Round),
		CreatorKey:     creatorKey,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// GetPlayer returns the player with the given ID, or nil if not in the match
func (m *Match) GetPlayer(id PlayerID) *Player {
	for _, p := range m.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// GetHost returns the host player, or nil if none
func (m *Match) GetHost() *Player {
	for _, p := range m.Players {
		if p.Host {
			return p
		}
	}
	return nil
}

// CurrentRound returns the active round, or nil before the first round
func (m *Match) CurrentRound() *Round {
	return m.Rounds[m.CurrentRoundNumber]
}

// LastCompletedRound returns the most recent completed round, or nil
func (m *Match) LastCompletedRound() *Round {
	for n := m.CurrentRoundNumber; n > 0; n-- {
		if r := m.Rounds[n]; r != nil && r.Status == RoundStatusCompleted {
			return r
		}
	}
	return nil
}

// HasMoreRounds reports whether another round follows the current one
func (m *Match) HasMoreRounds() bool {
	return m.CurrentRoundNumber < m.TotalRounds
}

// Touch records activity for idle eviction
func (m *Match) Touch(now time.Time) {
	m.LastActivityAt = now
}
