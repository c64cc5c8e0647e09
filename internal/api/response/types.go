package response

import (
	"time"

	"github.com/ramusita/chitgame/internal/model"
)

// Seat is returned from create and join. The token is shown once.
type Seat struct {
	MatchID     string    `json:"match_id"`
	Code        string    `json:"code"`
	PlayerID    string    `json:"player_id"`
	PlayerToken string    `json:"player_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SeatFromSession builds a Seat from the new session and its match code
func SeatFromSession(code model.MatchCode, s *model.PlayerSession) Seat {
	return Seat{
		MatchID:     string(s.MatchID),
		Code:        string(code),
		PlayerID:    string(s.PlayerID),
		PlayerToken: s.Token,
		ExpiresAt:   s.ExpiresAt,
	}
}

// Health is the health check body
type Health struct {
	Status string `json:"status"`
}
