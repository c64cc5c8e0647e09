package model

import "maps"

// PlayerSummary is the public per-player view
type PlayerSummary struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Host  bool     `json:"host"`
	Score int      `json:"score"`
}

// Reveal is the public outcome of a completed round
type Reveal struct {
	RoundNumber int               `json:"round_number"`
	SeekerID    PlayerID          `json:"seeker_id"`
	TargetID    PlayerID          `json:"target_id"`
	GuessedID   PlayerID          `json:"guessed_id"`
	Correct     bool              `json:"correct"`
	Roles       map[PlayerID]Role `json:"roles"`
}

// Snapshot is the public match state pushed to every subscriber. It never
// carries roles for a round that has not completed.
type Snapshot struct {
	MatchID             MatchID          `json:"match_id"`
	Code                MatchCode        `json:"code"`
	Status              MatchStatus      `json:"status"`
	TotalRounds         int              `json:"total_rounds"`
	CurrentRoundNumber  int              `json:"current_round_number"`
	Players             []PlayerSummary  `json:"players"`
	RoundStatus         RoundStatus      `json:"round_status,omitempty"`
	LastRoundScoreDelta map[PlayerID]int `json:"last_round_score_delta,omitempty"`
	LastReveal          *Reveal          `json:"last_reveal,omitempty"`
}

// PlayerView is a snapshot plus the caller's private role
type PlayerView struct {
	Snapshot
	Me     PlayerSummary `json:"me"`
	MyRole *Role         `json:"my_role"`
}

// NewSnapshot builds the public view of a match
func NewSnapshot(m *Match) Snapshot {
	s := Snapshot{
		MatchID:            m.ID,
		Code:               m.Code,
		Status:             m.Status,
		TotalRounds:        m.TotalRounds,
		CurrentRoundNumber: m.CurrentRoundNumber,
		Players:            make([]PlayerSummary, 0, len(m.Players)),
	}
	for _, p := range m.Players {
		s.Players = append(s.Players, p.Summary())
	}
	if r := m.CurrentRound(); r != nil {
		s.RoundStatus = r.Status
	}
	if last := m.LastCompletedRound(); last != nil {
		s.LastRoundScoreDelta = maps.Clone(last.ScoreDelta)
		s.LastReveal = &Reveal{
			RoundNumber: last.Number,
			SeekerID:    last.SeekerID,
			TargetID:    last.TargetID,
			GuessedID:   last.GuessedID,
			Correct:     last.GuessCorrect(),
			Roles:       maps.Clone(last.Assignments),
		}
	}
	return s
}

// NewPlayerView builds the private view for one player. The caller must
// have checked that the player is in the match.
func NewPlayerView(m *Match, p *Player) PlayerView {
	v := PlayerView{
		Snapshot: NewSnapshot(m),
		Me:       p.Summary(),
	}
	if r := m.CurrentRound(); r != nil {
		if role, ok := r.Assignments[p.ID]; ok {
			v.MyRole = &role
		}
	}
	return v
}
