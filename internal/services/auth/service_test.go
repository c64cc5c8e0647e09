package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ramusita/chitgame/internal/dependencies/mocks"
	"github.com/ramusita/chitgame/internal/model"
	"github.com/ramusita/chitgame/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig())
	s.ctx = context.Background()
}

// CreateSession tests

func (s *ServiceSuite) TestCreateSessionSucceeds() {
	session, err := s.service.CreateSession(s.ctx, "match-1", "player-1")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal(model.MatchID("match-1"), session.MatchID)
	s.Equal(model.PlayerID("player-1"), session.PlayerID)
	s.Equal(s.clock.Now().Add(30*time.Minute), session.ExpiresAt)
}

func (s *ServiceSuite) TestCreateSessionTokensAreUnique() {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		session, err := s.service.CreateSession(s.ctx, "match-1", "player-1")
		s.Require().NoError(err)
		s.False(seen[session.Token])
		seen[session.Token] = true
	}
}

func (s *ServiceSuite) TestCreateSessionUsesConfiguredTTL() {
	svc := New(s.storage, s.clock, Config{SessionTTL: 5 * time.Minute})

	session, err := svc.CreateSession(s.ctx, "match-1", "player-1")
	s.Require().NoError(err)
	s.Equal(s.clock.Now().Add(5*time.Minute), session.ExpiresAt)
}

// RequireValidSession tests

func (s *ServiceSuite) TestRequireValidSessionSucceeds() {
	created, _ := s.service.CreateSession(s.ctx, "match-1", "player-1")

	session, err := s.service.RequireValidSession(s.ctx, created.Token, "match-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), session.PlayerID)
}

func (s *ServiceSuite) TestRequireValidSessionFailsWhenBlank() {
	_, err := s.service.RequireValidSession(s.ctx, "   ", "match-1")
	s.ErrorIs(err, model.ErrSessionInvalid)
}

func (s *ServiceSuite) TestRequireValidSessionFailsWhenUnknown() {
	_, err := s.service.RequireValidSession(s.ctx, "pt_nope", "match-1")
	s.ErrorIs(err, model.ErrSessionInvalid)
}

func (s *ServiceSuite) TestRequireValidSessionFailsForOtherMatch() {
	created, _ := s.service.CreateSession(s.ctx, "match-1", "player-1")

	_, err := s.service.RequireValidSession(s.ctx, created.Token, "match-2")
	s.ErrorIs(err, model.ErrSessionInvalid)
}

func (s *ServiceSuite) TestRequireValidSessionFailsWhenExpired() {
	created, _ := s.service.CreateSession(s.ctx, "match-1", "player-1")

	s.clock.Advance(31 * time.Minute)

	_, err := s.service.RequireValidSession(s.ctx, created.Token, "match-1")
	s.ErrorIs(err, model.ErrSessionInvalid)

	_, err = s.storage.GetSession(s.ctx, created.Token)
	s.ErrorIs(err, model.ErrSessionInvalid, "expired session should be removed on access")
}

func (s *ServiceSuite) TestRequireValidSessionDoesNotExtendExpiry() {
	created, _ := s.service.CreateSession(s.ctx, "match-1", "player-1")

	s.clock.Advance(29 * time.Minute)
	_, err := s.service.RequireValidSession(s.ctx, created.Token, "match-1")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Minute)
	_, err = s.service.RequireValidSession(s.ctx, created.Token, "match-1")
	s.ErrorIs(err, model.ErrSessionInvalid)
}

func (s *ServiceSuite) TestRequireValidSessionAtExactExpiry() {
	created, _ := s.service.CreateSession(s.ctx, "match-1", "player-1")

	s.clock.Advance(30 * time.Minute)

	_, err := s.service.RequireValidSession(s.ctx, created.Token, "match-1")
	s.NoError(err)
}

// InvalidateSession tests

func (s *ServiceSuite) TestInvalidateSession() {
	created, _ := s.service.CreateSession(s.ctx, "match-1", "player-1")

	s.Require().NoError(s.service.InvalidateSession(s.ctx, created.Token))

	_, err := s.service.RequireValidSession(s.ctx, created.Token, "match-1")
	s.ErrorIs(err, model.ErrSessionInvalid)
}

// CleanExpiredSessions tests

func (s *ServiceSuite) TestCleanExpiredSessions() {
	old, _ := s.service.CreateSession(s.ctx, "match-1", "player-1")
	s.clock.Advance(20 * time.Minute)
	fresh, _ := s.service.CreateSession(s.ctx, "match-1", "player-2")
	s.clock.Advance(15 * time.Minute)

	removed, err := s.service.CleanExpiredSessions(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, removed)

	_, err = s.storage.GetSession(s.ctx, old.Token)
	s.ErrorIs(err, model.ErrSessionInvalid)
	_, err = s.service.RequireValidSession(s.ctx, fresh.Token, "match-1")
	s.NoError(err)
}
