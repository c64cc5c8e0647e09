package testutil

import (
	"sync"

	"github.com/ramusita/chitgame/internal/model"
)

// RecordingPublisher keeps every published snapshot in order
type RecordingPublisher struct {
	mu        sync.Mutex
	snapshots []model.Snapshot
}

// Publish records the snapshot
func (p *RecordingPublisher) Publish(s model.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, s)
}

// Snapshots returns a copy of everything published so far
func (p *RecordingPublisher) Snapshots() []model.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Snapshot(nil), p.snapshots...)
}

// Last returns the most recent snapshot, or the zero value
func (p *RecordingPublisher) Last() model.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.snapshots) == 0 {
		return model.Snapshot{}
	}
	return p.snapshots[len(p.snapshots)-1]
}

// Statuses returns the match status of every snapshot in order
func (p *RecordingPublisher) Statuses() []model.MatchStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.MatchStatus, len(p.snapshots))
	for i, s := range p.snapshots {
		out[i] = s.Status
	}
	return out
}

// Reset forgets recorded snapshots
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = nil
}
