package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/dilemma/internal/game"
	"github.com/lox/dilemma/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, *quartz.Mock, *httptest.Server) {
	t.Helper()

	clock := quartz.NewMock(t)
	hub := NewHub(log.New(io.Discard), clock)
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, clock, srv
}

func dial(t *testing.T, hub *Hub, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	before := hub.ClientCount()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return hub.ClientCount() == before+1
	}, time.Second, 10*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubHealth(t *testing.T) {
	_, _, srv := newTestHub(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestHubBroadcastsEvents(t *testing.T) {
	hub, clock, srv := newTestHub(t)
	a := dial(t, hub, srv)
	b := dial(t, hub, srv)

	alice := monitor.PlayerInfo{ID: game.NewPlayerID(), Name: "Alice"}
	bob := monitor.PlayerInfo{ID: game.NewPlayerID(), Name: "Bob"}

	hub.OnTournamentStart(monitor.TournamentStart{Name: "Cup", Rounds: 1, Matches: 1, Players: []monitor.PlayerInfo{alice, bob}})
	hub.OnTurn(monitor.TurnEvent{
		Match: "Alice vs. Bob", Turn: 1,
		Player1: alice, Player2: bob,
		Action1: game.Cooperate, Action2: game.Defect,
		Points1: 0, Points2: 5,
	})
	hub.OnMatchComplete(monitor.MatchOutcome{Match: "Alice vs. Bob", Turns: 1, Points2: 5})
	hub.OnTournamentComplete(monitor.Summary{Name: "Cup"})

	for _, conn := range []*websocket.Conn{a, b} {
		start := readMessage(t, conn)
		assert.Equal(t, MessageTypeTournamentStart, start.Type)
		assert.True(t, clock.Now().Equal(start.Timestamp))

		var ts monitor.TournamentStart
		require.NoError(t, json.Unmarshal(start.Data, &ts))
		assert.Equal(t, "Cup", ts.Name)
		require.Len(t, ts.Players, 2)
		assert.Equal(t, alice.ID, ts.Players[0].ID)

		turn := readMessage(t, conn)
		assert.Equal(t, MessageTypeTurn, turn.Type)
		var te monitor.TurnEvent
		require.NoError(t, json.Unmarshal(turn.Data, &te))
		assert.Equal(t, game.Defect, te.Action2)
		assert.Equal(t, game.Points(5), te.Points2)

		assert.Equal(t, MessageTypeMatchComplete, readMessage(t, conn).Type)
		assert.Equal(t, MessageTypeTournamentComplete, readMessage(t, conn).Type)
	}
}

func TestHubReplaysStartToLateJoiners(t *testing.T) {
	hub, _, srv := newTestHub(t)
	hub.OnTournamentStart(monitor.TournamentStart{Name: "Late", Rounds: 3})

	conn := dial(t, hub, srv)
	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeTournamentStart, msg.Type)
	assert.Contains(t, string(msg.Data), `"name":"Late"`)
}

func TestHubClientDisconnect(t *testing.T) {
	hub, _, srv := newTestHub(t)
	conn := dial(t, hub, srv)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubClose(t *testing.T) {
	hub, _, srv := newTestHub(t)
	conn := dial(t, hub, srv)

	hub.Close()
	assert.Zero(t, hub.ClientCount())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}

func TestHubListenAndServeStopsOnCancel(t *testing.T) {
	hub := NewHub(log.New(io.Discard), quartz.NewMock(t))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- hub.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
