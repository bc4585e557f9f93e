package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alban-care/snake-game/pkg/clock"
	"github.com/alban-care/snake-game/pkg/config"
	"github.com/alban-care/snake-game/pkg/game"
	"github.com/alban-care/snake-game/pkg/stats"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	http   *httptest.Server
	ledger *stats.Ledger
	clock  *clock.Manual
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ledger, err := stats.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })

	settings := config.Default()
	settings.Seed = 42
	mc := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	srv := httptest.NewServer(New(settings, ledger, WithClock(mc)).Handler())
	t.Cleanup(srv.Close)

	return &testServer{http: srv, ledger: ledger, clock: mc}
}

func (ts *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.http.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) game.Frame {
	t.Helper()
	msg := readMessage(t, conn)
	require.Equal(t, messageState, msg.Type)
	require.NotNil(t, msg.State)
	return *msg.State
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.http.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionSummary(t *testing.T) {
	ts := newTestServer(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ts.ledger.Record(context.Background(), game.RoundResult{
		ID: "r1", Score: 4, FoodEaten: 4, Ticks: 30, GridSize: 20,
		StartedAt: start, EndedAt: start.Add(6 * time.Second),
	}))

	resp, err := http.Get(ts.http.URL + "/api/session")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Summary stats.Summary `json:"summary"`
		Recent  []stats.Round `json:"recent"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Summary.Rounds)
	assert.Equal(t, 4, body.Summary.BestScore)
	require.Len(t, body.Recent, 1)
	assert.Equal(t, "r1", body.Recent[0].ID)
}

func TestWebSocketSession(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t)

	cfg := readMessage(t, conn)
	require.Equal(t, messageConfig, cfg.Type)
	require.NotNil(t, cfg.Config)
	assert.Equal(t, config.GridSize, cfg.Config.GridSize)
	assert.NotEmpty(t, cfg.Config.SessionID)

	idle := readState(t, conn)
	assert.Equal(t, game.Idle.String(), idle.Status)
	assert.Equal(t, "start", idle.Instruction)
	assert.Equal(t, []game.Point{{X: config.StartX, Y: config.StartY}}, idle.Snake)

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: "jump"}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Action: "activate"}))

	running := readState(t, conn)
	assert.Equal(t, game.Running.String(), running.Status)
	assert.Equal(t, "pause", running.Instruction)

	ts.clock.Advance(config.InitialSpeed)

	moved := readState(t, conn)
	require.NotEmpty(t, moved.Snake)
	assert.Equal(t, game.Point{X: config.StartX - 1, Y: config.StartY}, moved.Snake[0])
}

func TestSessionsAreIndependent(t *testing.T) {
	ts := newTestServer(t)
	a := ts.dial(t)
	b := ts.dial(t)

	cfgA := readMessage(t, a)
	cfgB := readMessage(t, b)
	assert.NotEqual(t, cfgA.Config.SessionID, cfgB.Config.SessionID)
	readState(t, a)
	readState(t, b)

	require.NoError(t, a.WriteJSON(ClientMessage{Action: "activate"}))
	assert.Equal(t, game.Running.String(), readState(t, a).Status)

	require.NoError(t, a.WriteJSON(ClientMessage{Action: "left"}))
	require.NoError(t, b.WriteJSON(ClientMessage{Action: "activate"}))
	assert.Equal(t, game.Running.String(), readState(t, b).Status)
}
