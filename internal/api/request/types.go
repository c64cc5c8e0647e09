package request

// CreateMatchRequest is the request body for opening a match
type CreateMatchRequest struct {
	PlayerName  string `json:"player_name"`
	TotalRounds int    `json:"total_rounds"`
}

// JoinMatchRequest is the request body for joining by code
type JoinMatchRequest struct {
	Code       string `json:"code"`
	PlayerName string `json:"player_name"`
}

// GuessRequest is the request body for the seeker's guess
type GuessRequest struct {
	GuessedPlayerID string `json:"guessed_player_id"`
}
