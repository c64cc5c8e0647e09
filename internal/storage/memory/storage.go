package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ramusita/chitgame/internal/model"
	"github.com/ramusita/chitgame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	sessionsMu sync.RWMutex
	sessions   map[string]*model.PlayerSession

	countersMu sync.Mutex
	counters   map[string]*model.RateCounter
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[string]*model.PlayerSession),
		counters: make(map[string]*model.RateCounter),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Close is a no-op
func (s *Storage) Close() error {
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.PlayerSession) error {
	cp := *session
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	s.sessions[session.Token] = &cp
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.PlayerSession, error) {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionInvalid
	}
	cp := *session
	return &cp, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	removed := 0
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Counter operations

func (s *Storage) Hit(ctx context.Context, key string, limit int, windowSeconds int64, now int64) (model.RateCounter, bool, error) {
	s.countersMu.Lock()
	defer s.countersMu.Unlock()

	c, ok := s.counters[key]
	if !ok {
		c = &model.RateCounter{Key: key, WindowStart: now}
		s.counters[key] = c
	}
	if c.WindowExpired(now, windowSeconds) {
		c.WindowStart = now
		c.Count = 0
	}
	if c.Count >= limit {
		return *c, false, nil
	}
	c.Count++
	return *c, true, nil
}

func (s *Storage) DeleteIdleCounters(ctx context.Context, before int64) (int, error) {
	s.countersMu.Lock()
	defer s.countersMu.Unlock()
	removed := 0
	for key, c := range s.counters {
		if c.WindowStart < before {
			delete(s.counters, key)
			removed++
		}
	}
	return removed, nil
}
