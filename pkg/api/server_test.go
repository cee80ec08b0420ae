package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cbodonnell/trajectory/pkg/clients"
	"github.com/cbodonnell/trajectory/pkg/config"
	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/messages"
	"github.com/cbodonnell/trajectory/pkg/queue"
	"github.com/cbodonnell/trajectory/pkg/state"
	"github.com/cbodonnell/trajectory/pkg/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

type testServer struct {
	api     *APIServer
	http    *httptest.Server
	queue   *queue.InMemoryQueue
	state   *state.InMemoryStateManager
	clients *clients.ClientManager
}

func newTestServer(t *testing.T, apiConfig config.APIConfig) *testServer {
	t.Helper()
	ts := &testServer{
		queue:   queue.NewInMemoryQueue(16),
		state:   state.NewInMemoryStateManager(),
		clients: clients.NewClientManager(0),
	}
	ts.api = NewAPIServer(NewAPIServerOptions{
		Config:        apiConfig,
		CommandQueue:  ts.queue,
		StateManager:  ts.state,
		ClientManager: ts.clients,
	})
	ts.http = httptest.NewServer(ts.api.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		ts.api.Stop(ctx)
		ts.http.Close()
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method string, path string, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.http.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAPIServer_Routes(t *testing.T) {
	ts := newTestServer(t, config.APIConfig{FireRate: 100, FireBurst: 100})

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{method: http.MethodPost, path: "/fire", body: `{"angle": 45, "power": 10}`, wantStatus: http.StatusAccepted},
		{method: http.MethodGet, path: "/fire", wantStatus: http.StatusMethodNotAllowed},
		{method: http.MethodPost, path: "/reset", wantStatus: http.StatusAccepted},
		{method: http.MethodPost, path: "/resize", body: `{"width": 800, "height": 600}`, wantStatus: http.StatusAccepted},
		{method: http.MethodGet, path: "/snapshot", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/attempts", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/trails", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/distance", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/missing", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	queued, err := ts.queue.ReadAllMessages()
	require.NoError(t, err)
	require.Len(t, queued, 3)
	assert.IsType(t, &types.FireCommand{}, queued[0])
	assert.IsType(t, &types.ResetCommand{}, queued[1])
	assert.IsType(t, &types.ResizeCommand{}, queued[2])
}

func TestAPIServer_CORSPreflight(t *testing.T) {
	ts := newTestServer(t, config.APIConfig{FireRate: 1, FireBurst: 1})

	tests := []struct {
		path          string
		requestMethod string
	}{
		{path: "/fire", requestMethod: http.MethodPost},
		{path: "/reset", requestMethod: http.MethodPost},
		{path: "/snapshot", requestMethod: http.MethodGet},
		{path: "/attempts", requestMethod: http.MethodGet},
		{path: "/distance", requestMethod: http.MethodGet},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, ts.http.URL+tt.path, nil)
			require.NoError(t, err)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", tt.requestMethod)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type")
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.requestMethod, resp.Header.Get("Access-Control-Allow-Methods"))
		})
	}

	// preflights never reach the handlers
	queued, err := ts.queue.ReadAllMessages()
	require.NoError(t, err)
	assert.Empty(t, queued)
}

func TestAPIServer_CORSActualRequest(t *testing.T) {
	ts := newTestServer(t, config.APIConfig{FireRate: 1, FireBurst: 1})

	req, err := http.NewRequest(http.MethodGet, ts.http.URL+"/snapshot", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAPIServer_FireRateLimit(t *testing.T) {
	ts := newTestServer(t, config.APIConfig{FireRate: 0.001, FireBurst: 2})

	var statuses []int
	for i := 0; i < 3; i++ {
		statuses = append(statuses, ts.do(t, http.MethodPost, "/fire", `{"angle": 30, "power": 5}`).StatusCode)
	}
	assert.Equal(t, []int{http.StatusAccepted, http.StatusAccepted, http.StatusTooManyRequests}, statuses)

	// other commands are not limited
	assert.Equal(t, http.StatusAccepted, ts.do(t, http.MethodPost, "/reset", "").StatusCode)
}

func TestAPIServer_Distance(t *testing.T) {
	ts := newTestServer(t, config.APIConfig{FireRate: 1, FireBurst: 1})
	snapshot := types.NewSessionSnapshot()
	snapshot.Distance = 22.634
	require.NoError(t, ts.state.Set(context.Background(), snapshot))

	resp := ts.do(t, http.MethodGet, "/distance", "")
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"distance": "22.63", "meters": 22.634}`, string(b))
}

func TestAPIServer_Stream(t *testing.T) {
	ts := newTestServer(t, config.APIConfig{FireRate: 1, FireBurst: 1})

	messageChan := make(chan *messages.Message, 1)
	worker := workers.NewBroadcastMessageWorker(workers.NewBroadcastMessageWorkerOptions{
		ClientManager:     ts.clients,
		ServerMessageChan: messageChan,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go worker.Start(ctx)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.http.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")
	require.Eventually(t, func() bool { return ts.clients.Count() == 1 }, time.Second, 10*time.Millisecond)

	msg, err := messages.NewMessage(messages.MessageTypeServerReset, 3, &messages.ServerReset{Distance: "0.00"})
	require.NoError(t, err)
	messageChan <- msg

	_, b, err := conn.Read(ctx)
	require.NoError(t, err)
	received, err := messages.DeserializeMessage(b)
	require.NoError(t, err)
	assert.Equal(t, messages.MessageTypeServerReset, received.Type)
	assert.Equal(t, uint64(3), received.Tick)
}
