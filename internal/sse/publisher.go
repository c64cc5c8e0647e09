package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/ramusita/chitgame/internal/model"
)

// StateEvent is the SSE event name carrying a match snapshot
const StateEvent = "state"

// Publisher pushes match snapshots to the match's hub as JSON
type Publisher struct {
	hubs   *HubManager
	logger *slog.Logger
}

// NewPublisher creates a Publisher over hubs
func NewPublisher(hubs *HubManager, logger *slog.Logger) *Publisher {
	return &Publisher{
		hubs:   hubs,
		logger: logger.With(slog.String("component", "sse-publisher")),
	}
}

// Publish broadcasts the snapshot if anyone is watching the match
func (p *Publisher) Publish(snapshot model.Snapshot) {
	hub := p.hubs.GetHub(snapshot.MatchID)
	if hub == nil {
		return
	}
	msg, err := EncodeSnapshot(snapshot)
	if err != nil {
		p.logger.Error("sse failed to encode snapshot",
			slog.String("match_id", string(snapshot.MatchID)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(msg)
}

// EncodeSnapshot renders a snapshot as a complete SSE state event
func EncodeSnapshot(snapshot model.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(StateEvent, string(data)), nil
}
