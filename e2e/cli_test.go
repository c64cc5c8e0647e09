package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramusita/chitgame/internal/api"
	"github.com/ramusita/chitgame/internal/factory"
)

// cliRunner drives the built chit binary as one seated player
type cliRunner struct {
	binaryPath string
	serverURL  string
	seatFile   string
}

func buildCLI(t *testing.T) string {
	t.Helper()

	projectRoot := findProjectRoot(t)
	binaryPath := filepath.Join(projectRoot, "bin", "chit-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/chit")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))
	return binaryPath
}

func newCLIRunner(t *testing.T, binaryPath, serverURL string) *cliRunner {
	t.Helper()
	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		seatFile:   filepath.Join(t.TempDir(), "seat.json"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.seatFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "CHIT_SERVER=", "CHIT_TOKEN=", "CHIT_MATCH=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runJSON(t *testing.T, into any, args ...string) {
	t.Helper()
	output, err := r.run(args...)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), into), "output: %s", output)
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         app.Logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Limiter:        app.Limiter,
		HubManager:     app.HubManager,
		Rates:          app.Rates,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	server.RegisterOnShutdown(app.HubManager.CloseAll)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

type seatResponse struct {
	MatchID     string `json:"match_id"`
	Code        string `json:"code"`
	PlayerID    string `json:"player_id"`
	PlayerToken string `json:"player_token"`
}

type roleResponse struct {
	Name     string `json:"name"`
	IsSeeker bool   `json:"is_seeker"`
	IsTarget bool   `json:"is_target"`
}

type summaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type viewResponse struct {
	Status             string            `json:"status"`
	CurrentRoundNumber int               `json:"current_round_number"`
	Players            []summaryResponse `json:"players"`
	Me                 summaryResponse   `json:"me"`
	MyRole             *roleResponse     `json:"my_role"`
	LastReveal         *struct {
		Correct bool `json:"correct"`
	} `json:"last_reveal"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, buildCLI(t), ts.addr)

	var resp healthResponse
	cli.runJSON(t, &resp, "health")
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_FullMatch(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	binary := buildCLI(t)
	host := newCLIRunner(t, binary, ts.addr)
	players := []*cliRunner{host, newCLIRunner(t, binary, ts.addr), newCLIRunner(t, binary, ts.addr)}

	var created seatResponse
	host.runJSON(t, &created, "match", "create", "--name", "Host", "--rounds", "2")
	require.Len(t, created.Code, 6)
	require.True(t, strings.HasPrefix(created.PlayerToken, "pt_"))

	for i, p := range players[1:] {
		var joined seatResponse
		p.runJSON(t, &joined, "match", "join", strings.ToLower(created.Code), "--name", []string{"Two", "Three"}[i])
		assert.Equal(t, created.MatchID, joined.MatchID)
	}

	output, err := players[1].run("match", "start")
	require.Error(t, err)
	assert.Contains(t, output, "NOT_HOST")

	output, err = host.run("match", "start")
	require.NoError(t, err, "output: %s", output)

	for round := 1; round <= 2; round++ {
		var seeker *cliRunner
		var targetID string
		for _, p := range players {
			var view viewResponse
			p.runJSON(t, &view, "match", "me")
			require.Equal(t, round, view.CurrentRoundNumber)
			require.NotNil(t, view.MyRole)
			if view.MyRole.IsSeeker {
				seeker = p
			}
			if view.MyRole.IsTarget {
				targetID = view.Me.ID
			}
		}
		require.NotNil(t, seeker, "round %d has no seeker", round)

		output, err = seeker.run("match", "guess", targetID)
		require.NoError(t, err, "output: %s", output)
	}

	var final viewResponse
	host.runJSON(t, &final, "match", "me")
	assert.Equal(t, "FINISHED", final.Status)
	require.NotNil(t, final.LastReveal)
	assert.True(t, final.LastReveal.Correct)

	total := 0
	for _, p := range final.Players {
		total += p.Score
	}
	// each correct round pays the seeker 5000 and the third chit its 400
	assert.Equal(t, 10800, total)

	var snap viewResponse
	host.runJSON(t, &snap, "events", "--limit", "1")
	assert.Equal(t, "FINISHED", snap.Status)
}

func TestCLI_Errors(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	binary := buildCLI(t)
	cli := newCLIRunner(t, binary, ts.addr)

	t.Run("join unknown code", func(t *testing.T) {
		output, err := cli.run("match", "join", "ZZZZZZ", "--name", "Lost")
		require.Error(t, err)
		assert.Contains(t, output, "MATCH_NOT_FOUND")
	})

	t.Run("me without a seat", func(t *testing.T) {
		output, err := cli.run("match", "me")
		require.Error(t, err)
		assert.Contains(t, output, "no match selected")
	})

	t.Run("start below minimum players", func(t *testing.T) {
		var created seatResponse
		cli.runJSON(t, &created, "match", "create", "--name", "Alone")
		output, err := cli.run("match", "start")
		require.Error(t, err)
		assert.Contains(t, output, "INSUFFICIENT_PLAYERS")
	})
}
