package model

import "time"

// PlayerSession binds an opaque token to one player in one match
type PlayerSession struct {
	Token     string    `json:"token"`
	MatchID   MatchID   `json:"match_id"`
	PlayerID  PlayerID  `json:"player_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now
func (s *PlayerSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
