package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramusita/chitgame/internal/model"
	"github.com/ramusita/chitgame/internal/testutil"
)

func TestEncodeSnapshot(t *testing.T) {
	msg, err := EncodeSnapshot(model.Snapshot{MatchID: "m1", Code: "ABCDEF", Status: model.MatchStatusLobby})
	require.NoError(t, err)

	s := string(msg)
	assert.True(t, strings.HasPrefix(s, "event: state\ndata: {"))
	assert.True(t, strings.HasSuffix(s, "}\n\n"))
	assert.Contains(t, s, `"code":"ABCDEF"`)
}

func TestPublisher_SkipsUnwatchedMatch(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	p := NewPublisher(m, testutil.NopLogger())

	p.Publish(model.Snapshot{MatchID: "nobody"})
	assert.Equal(t, 0, m.HubCount())
}

func TestPublisher_DeliversToWatchers(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	p := NewPublisher(m, testutil.NopLogger())
	hub := m.GetOrCreateHub("m1")
	defer m.RemoveHub("m1")

	client := NewClient("p1")
	require.True(t, hub.Register(client))
	waitForClients(t, hub, 1)

	p.Publish(model.Snapshot{MatchID: "m1", Status: model.MatchStatusInRound, CurrentRoundNumber: 1})

	select {
	case msg := <-client.send:
		data := strings.TrimSuffix(strings.TrimPrefix(string(msg), "event: state\ndata: "), "\n\n")
		var got model.Snapshot
		require.NoError(t, json.Unmarshal([]byte(data), &got))
		assert.Equal(t, model.MatchStatusInRound, got.Status)
		assert.Equal(t, 1, got.CurrentRoundNumber)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestServeSSE_SendsInitialThenUpdates(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	p := NewPublisher(m, testutil.NopLogger())
	hub := m.GetOrCreateHub("m1")
	defer m.RemoveHub("m1")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub, "p1", func() ([]byte, error) {
			return EncodeSnapshot(model.Snapshot{MatchID: "m1", Status: model.MatchStatusLobby})
		})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readData := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}

	assert.Contains(t, readData(), `"status":"LOBBY"`)

	waitForClients(t, hub, 1)
	p.Publish(model.Snapshot{MatchID: "m1", Status: model.MatchStatusFinished})
	assert.Contains(t, readData(), `"status":"FINISHED"`)
}
