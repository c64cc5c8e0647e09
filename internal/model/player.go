package model

// PlayerID uniquely identifies a player within a match
type PlayerID string

// Player is a participant in one match
type Player struct {
	ID         PlayerID
	Name       string
	Host       bool
	TotalScore int
}

// Summary returns the public view of the player
func (p *Player) Summary() PlayerSummary {
	return PlayerSummary{
		ID:    p.ID,
		Name:  p.Name,
		Host:  p.Host,
		Score: p.TotalScore,
	}
}
