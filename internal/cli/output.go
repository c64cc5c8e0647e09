package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}
	o.printText(data)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(o.w, msg)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Seat:
		o.printSeat(v)
	case PlayerView:
		o.printPlayerView(v)
	case Snapshot:
		o.printSnapshot(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		o.printJSON(data)
	}
}

// Role is one dealt chit
type Role struct {
	Name     string `json:"name"`
	Points   int    `json:"points"`
	IsSeeker bool   `json:"is_seeker"`
	IsTarget bool   `json:"is_target"`
}

// PlayerSummary is one row of the scoreboard
type PlayerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Host  bool   `json:"host"`
	Score int    `json:"score"`
}

// Reveal is the outcome of the last completed round
type Reveal struct {
	RoundNumber int             `json:"round_number"`
	SeekerID    string          `json:"seeker_id"`
	TargetID    string          `json:"target_id"`
	GuessedID   string          `json:"guessed_id"`
	Correct     bool            `json:"correct"`
	Roles       map[string]Role `json:"roles"`
}

// Snapshot is the public match state
type Snapshot struct {
	MatchID             string          `json:"match_id"`
	Code                string          `json:"code"`
	Status              string          `json:"status"`
	TotalRounds         int             `json:"total_rounds"`
	CurrentRoundNumber  int             `json:"current_round_number"`
	Players             []PlayerSummary `json:"players"`
	RoundStatus         string          `json:"round_status,omitempty"`
	LastRoundScoreDelta map[string]int  `json:"last_round_score_delta,omitempty"`
	LastReveal          *Reveal         `json:"last_reveal,omitempty"`
}

// PlayerView is the snapshot plus the caller's own seat and role
type PlayerView struct {
	Snapshot
	Me     PlayerSummary `json:"me"`
	MyRole *Role         `json:"my_role"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSeat(s Seat) {
	fmt.Fprintf(o.w, "Match: %s\n", s.MatchID)
	fmt.Fprintf(o.w, "Code: %s\n", s.Code)
	fmt.Fprintf(o.w, "Player: %s\n", s.PlayerID)
	fmt.Fprintf(o.w, "Token: %s\n", s.PlayerToken)
}

func (o *Output) printSnapshot(s Snapshot) {
	fmt.Fprintf(o.w, "Match: %s (code %s)\n", s.MatchID, s.Code)
	fmt.Fprintf(o.w, "Status: %s\n", s.Status)
	fmt.Fprintf(o.w, "Round: %d of %d", s.CurrentRoundNumber, s.TotalRounds)
	if s.RoundStatus != "" {
		fmt.Fprintf(o.w, " (%s)", s.RoundStatus)
	}
	fmt.Fprintln(o.w)

	names := make(map[string]string, len(s.Players))
	fmt.Fprintf(o.w, "Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		names[p.ID] = p.Name
		host := ""
		if p.Host {
			host = " [host]"
		}
		delta := ""
		if d, ok := s.LastRoundScoreDelta[p.ID]; ok {
			delta = fmt.Sprintf(" (+%d)", d)
		}
		fmt.Fprintf(o.w, "  - %s (%s): %d%s%s\n", p.Name, p.ID, p.Score, delta, host)
	}

	if r := s.LastReveal; r != nil {
		verdict := "missed"
		if r.Correct {
			verdict = "found"
		}
		fmt.Fprintf(o.w, "Round %d: %s %s %s\n", r.RoundNumber, names[r.SeekerID], verdict, names[r.TargetID])
		ids := make([]string, 0, len(r.Roles))
		for id := range r.Roles {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf("%s=%s", names[id], r.Roles[id].Name))
		}
		fmt.Fprintf(o.w, "Roles: %s\n", strings.Join(parts, ", "))
	}
}

func (o *Output) printPlayerView(v PlayerView) {
	o.printSnapshot(v.Snapshot)
	fmt.Fprintf(o.w, "You: %s (%s)\n", v.Me.Name, v.Me.ID)
	if v.MyRole != nil {
		tag := ""
		switch {
		case v.MyRole.IsSeeker:
			tag = " - you are the seeker, guess who holds the target chit"
		case v.MyRole.IsTarget:
			tag = " - you are the target, stay hidden"
		}
		fmt.Fprintf(o.w, "Your chit: %s (%d points)%s\n", v.MyRole.Name, v.MyRole.Points, tag)
	}
}
