package framework

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatSocketHandler greets each client, answers pings with pongs, and sends one malformed frame
// before each pong.
func chatSocketHandler() http.Handler {
	upgrader := websocket.Upgrader{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(map[string]string{"type": "connected", "userId": r.URL.Query().Get("userId")})
		for {
			var m map[string]string
			if err := conn.ReadJSON(&m); err != nil {
				return
			}
			if m["type"] == "ping" {
				_ = conn.WriteMessage(websocket.TextMessage, []byte("not json"))
				_ = conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2, 3})
				_ = conn.WriteJSON(map[string]string{"type": "pong"})
			}
		}
	})
}

func silentSocketHandler() http.Handler {
	upgrader := websocket.Upgrader{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

func TestWebSocketURL(t *testing.T) {
	h, err := NewTestHarness("http://localhost:3000", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:3000/ws/chat?isAdmin=false&userId=test123",
		h.WebSocketURL("/ws/chat", url.Values{"userId": {"test123"}, "isAdmin": {"false"}}))

	h, err = NewTestHarness("https://example.com", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "wss://example.com/ws/chat", h.WebSocketURL("/ws/chat", nil))
}

func TestWebSocketReceivesMessagesInOrder(t *testing.T) {
	server := httptest.NewServer(chatSocketHandler())
	defer server.Close()
	h := newHarnessForServer(t, server)

	conn, err := h.OpenWebSocket("/ws/chat", url.Values{"userId": {"test123"}}, nil)
	require.NoError(t, err)
	defer conn.Close()

	messages, err := conn.AwaitMessages(1, time.Second*5)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "connected", messages[0].GetByKey("type").StringValue())
	assert.Equal(t, "test123", messages[0].GetByKey("userId").StringValue())

	require.NoError(t, conn.SendJSON(map[string]string{"type": "ping"}))
	messages, err = conn.AwaitMessages(2, time.Second*5)
	require.NoError(t, err)
	require.Len(t, messages, 2, "malformed and binary frames should have been skipped")
	assert.Equal(t, "pong", messages[1].GetByKey("type").StringValue())

	assert.Equal(t, messages, h.WebSocketMessages())
}

func TestWebSocketAwaitTimesOut(t *testing.T) {
	server := httptest.NewServer(silentSocketHandler())
	defer server.Close()
	h := newHarnessForServer(t, server)

	conn, err := h.OpenWebSocket("/ws/chat", nil, nil)
	require.NoError(t, err)
	defer conn.Close()

	start := time.Now()
	messages, err := conn.AwaitMessages(1, time.Millisecond*100)
	assert.Error(t, err)
	assert.Len(t, messages, 0)
	assert.True(t, time.Since(start) < time.Second*2, "await should return at the timeout")
}

func TestWebSocketAwaitReturnsWhenServerCloses(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.WriteJSON(map[string]string{"type": "connected"})
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}))
	defer server.Close()
	h := newHarnessForServer(t, server)

	conn, err := h.OpenWebSocket("/ws/chat", nil, nil)
	require.NoError(t, err)
	defer conn.Close()

	messages, err := conn.AwaitMessages(2, time.Second*5)
	assert.Error(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, `{"type":"connected"}`, messages[0].JSONString())
}

func TestWebSocketCloseIsIdempotent(t *testing.T) {
	server := httptest.NewServer(silentSocketHandler())
	defer server.Close()
	h := newHarnessForServer(t, server)

	conn, err := h.OpenWebSocket("/ws/chat", nil, nil)
	require.NoError(t, err)
	assert.NoError(t, conn.Close())
	assert.NoError(t, conn.Close())
}

func TestWebSocketHandshakeFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	h := newHarnessForServer(t, server)

	_, err := h.OpenWebSocket("/ws/chat", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 404")
}
