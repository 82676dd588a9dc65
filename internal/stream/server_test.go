package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStream(t *testing.T) (*Server, string) {
	t.Helper()
	s := NewServer("")
	ts := httptest.NewServer(http.HandlerFunc(s.handleWS))
	t.Cleanup(ts.Close)
	t.Cleanup(func() { s.Close() })
	return s, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesClient(t *testing.T) {
	s, url := newTestStream(t)
	conn := dial(t, url)

	require.Eventually(t, func() bool { return s.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	sent := StateMessage{
		Type: "state",
		Entities: []EntityPose{
			{Name: "die-0", Position: [3]float32{1, 0.5, -2}, Orientation: [4]float32{1, 0, 0, 0}},
		},
	}
	s.Broadcast(sent)

	var got StateMessage
	conn.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, sent, got)
}

func TestBroadcastFansOut(t *testing.T) {
	s, url := newTestStream(t)
	a := dial(t, url)
	b := dial(t, url)

	require.Eventually(t, func() bool { return s.ClientCount() == 2 },
		time.Second, 10*time.Millisecond)

	s.Broadcast(StateMessage{Type: "state"})

	for _, conn := range []*websocket.Conn{a, b} {
		var got StateMessage
		conn.SetReadDeadline(time.Now().Add(time.Second))
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, "state", got.Type)
	}
}

func TestDisconnectPrunesClient(t *testing.T) {
	s, url := newTestStream(t)
	conn := dial(t, url)

	require.Eventually(t, func() bool { return s.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool { return s.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestInboundMessagesAreDiscarded(t *testing.T) {
	s, url := newTestStream(t)
	conn := dial(t, url)

	require.Eventually(t, func() bool { return s.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	// Observers cannot mutate the table; a write must not kill the session.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"cheat"}`)))

	s.Broadcast(StateMessage{Type: "state"})
	var got StateMessage
	conn.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "state", got.Type)
	assert.Equal(t, 1, s.ClientCount())
}

func TestBroadcastWithNoClients(t *testing.T) {
	s := NewServer("")
	defer s.Close()
	s.Broadcast(StateMessage{Type: "state"}) // must not panic
	assert.Zero(t, s.ClientCount())
}
