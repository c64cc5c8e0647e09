package model

// RoundStatus is the lifecycle state of a single round
type RoundStatus string

const (
	RoundStatusDistributing     RoundStatus = "DISTRIBUTING"
	RoundStatusWaitingForSeeker RoundStatus = "WAITING_FOR_SEEKER"
	RoundStatusCompleted        RoundStatus = "COMPLETED"
)

// Round is one deal-guess-score cycle
type Round struct {
	Number      int
	Status      RoundStatus
	Assignments map[PlayerID]Role
	SeekerID    PlayerID
	TargetID    PlayerID
	GuessedID   PlayerID // empty until the seeker guesses
	ScoreDelta  map[PlayerID]int
}

// NewRound returns an empty round awaiting distribution
func NewRound(number int) *Round {
	return &Round{
		Number:      number,
		Status:      RoundStatusDistributing,
		Assignments: make(map[PlayerID]Role),
	}
}

// GuessCorrect reports whether the seeker found the target
func (r *Round) GuessCorrect() bool {
	return r.GuessedID != "" && r.GuessedID == r.TargetID
}
