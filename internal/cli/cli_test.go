package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ramusita/chitgame/internal/api"
	"github.com/ramusita/chitgame/internal/factory"
)

type CLISuite struct {
	suite.Suite
	app    *factory.App
	server *httptest.Server
	dir    string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	app, err := factory.New(factory.Config{})
	s.Require().NoError(err)
	s.app = app
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:         app.Logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Limiter:        app.Limiter,
		HubManager:     app.HubManager,
		Rates:          app.Rates,
	}))
	s.dir = s.T().TempDir()
}

func (s *CLISuite) TearDownTest() {
	s.app.HubManager.CloseAll()
	s.server.Close()
	_ = s.app.Close()
}

// run executes the CLI as the player whose seat lives in seatFile
func (s *CLISuite) run(seatFile string, args ...string) (string, error) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--server", s.server.URL,
		"--token-file", filepath.Join(s.dir, seatFile),
		"--output", "json",
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (s *CLISuite) runJSON(seatFile string, into any, args ...string) {
	out, err := s.run(seatFile, args...)
	s.Require().NoError(err, out)
	s.Require().NoError(json.Unmarshal([]byte(out), into), out)
}

func (s *CLISuite) TestHealth() {
	var result HealthResult
	s.runJSON("none", &result, "health")
	s.Equal("ok", result.Status)
}

func (s *CLISuite) TestFullMatch() {
	var host, two, three Seat
	s.runJSON("host", &host, "match", "create", "--name", "Host", "--rounds", "1")
	s.NotEmpty(host.PlayerToken)

	saved, err := os.ReadFile(filepath.Join(s.dir, "host"))
	s.Require().NoError(err)
	s.Contains(string(saved), host.MatchID)

	s.runJSON("two", &two, "match", "join", host.Code, "--name", "Two")
	s.runJSON("three", &three, "match", "join", host.Code, "--name", "Three")
	s.Equal(host.MatchID, two.MatchID)

	_, err = s.run("two", "match", "start")
	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal("NOT_HOST", apiErr.Code)

	_, err = s.run("host", "match", "start")
	s.Require().NoError(err)

	seats := map[string]Seat{"host": host, "two": two, "three": three}
	var seekerFile, targetID string
	for file := range seats {
		var view PlayerView
		s.runJSON(file, &view, "match", "me")
		s.Require().NotNil(view.MyRole)
		if view.MyRole.IsSeeker {
			seekerFile = file
		}
		if view.MyRole.IsTarget {
			targetID = view.Me.ID
		}
	}
	s.Require().NotEmpty(seekerFile)

	_, err = s.run(seekerFile, "match", "guess", targetID)
	s.Require().NoError(err)

	var view PlayerView
	s.runJSON(seekerFile, &view, "match", "me")
	s.Equal("FINISHED", view.Status)
	s.Require().NotNil(view.LastReveal)
	s.True(view.LastReveal.Correct)
	s.Equal(5000, view.Me.Score)

	var snap Snapshot
	s.runJSON("host", &snap, "events", "--limit", "1")
	s.Equal("FINISHED", snap.Status)
}

func (s *CLISuite) TestCommandsNeedAMatch() {
	_, err := s.run("missing", "match", "me")
	s.ErrorContains(err, "no match selected")
}

func (s *CLISuite) TestTextOutput() {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--server", s.server.URL, "--token-file", filepath.Join(s.dir, "t"),
		"match", "create", "--name", "Host"})
	s.Require().NoError(cmd.Execute())
	s.Contains(out.String(), "Code: ")
	s.Contains(out.String(), "Token: pt_")
}

func (s *CLISuite) TestBareTokenFile() {
	path := filepath.Join(s.dir, "bare")
	s.Require().NoError(os.WriteFile(path, []byte("pt_abc\n"), 0o600))

	c := &Config{TokenFile: path}
	s.Require().NoError(c.LoadToken())
	s.Equal("pt_abc", c.Token)
	s.Nil(c.Seat)

	c = &Config{TokenFile: path, Token: "explicit"}
	s.Require().NoError(c.LoadToken())
	s.Equal("explicit", c.Token)
}
