package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/ramusita/chitgame/internal/dependencies/clock"
	"github.com/ramusita/chitgame/internal/model"
	"github.com/ramusita/chitgame/internal/storage"
)

const tokenPrefix = "pt_"

// Service issues and validates player session tokens
type Service struct {
	sessions storage.SessionStore
	clock    clock.Clock
	ttl      time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionTTL: 30 * time.Minute,
	}
}

// New creates a new auth Service
func New(sessions storage.SessionStore, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultConfig().SessionTTL
	}
	return &Service{
		sessions: sessions,
		clock:    clock,
		ttl:      cfg.SessionTTL,
	}
}

// CreateSession issues a fresh token bound to one player in one match.
// The expiry is fixed at issuance and never extended.
func (s *Service) CreateSession(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.PlayerSession, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	session := &model.PlayerSession{
		Token:     token,
		MatchID:   matchID,
		PlayerID:  playerID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// RequireValidSession returns the session for token if it exists, has not
// expired and is bound to matchID. Every failure wraps
// model.ErrSessionInvalid.
func (s *Service) RequireValidSession(ctx context.Context, token string, matchID model.MatchID) (*model.PlayerSession, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("missing token: %w", model.ErrSessionInvalid)
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		_ = s.sessions.DeleteSession(ctx, token)
		return nil, fmt.Errorf("session expired: %w", model.ErrSessionInvalid)
	}

	if session.MatchID != matchID {
		return nil, fmt.Errorf("session bound to another match: %w", model.ErrSessionInvalid)
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions(ctx context.Context) (int, error) {
	return s.sessions.DeleteExpiredSessions(ctx, s.clock.Now())
}

// generateToken returns 256 bits of crypto randomness, base64url encoded
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
