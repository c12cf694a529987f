package framework

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	webSocketHandshakeTimeout = time.Second * 10
	webSocketCloseTimeout     = time.Second * 2
)

// WebSocketConn is a client connection to the server under test. A background goroutine reads
// every text frame, decodes it as JSON, and records it both here and on the owning TestHarness.
//
// Only one goroutine may call SendJSON or Close at a time.
type WebSocketConn struct {
	conn     *websocket.Conn
	owner    *TestHarness
	logger   Logger
	messages []ldvalue.Value
	received chan struct{}
	done     chan struct{}
	lock     sync.Mutex
	closing  sync.Once
}

// WebSocketURL converts the harness base URL into a ws or wss URL for the given path.
func (h *TestHarness) WebSocketURL(path string, query url.Values) string {
	u := *h.baseURL
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path += path
	u.RawQuery = query.Encode()
	return u.String()
}

// OpenWebSocket connects to a WebSocket endpoint of the server under test.
func (h *TestHarness) OpenWebSocket(path string, query url.Values, logger Logger) (*WebSocketConn, error) {
	if logger == nil {
		logger = h.logger
	}
	target := h.WebSocketURL(path, query)
	logger.Printf("Opening WebSocket %s", target)

	dialer := websocket.Dialer{HandshakeTimeout: webSocketHandshakeTimeout}
	conn, resp, err := dialer.Dial(target, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket handshake to %s failed with HTTP status %d: %w", target, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("could not connect to %s: %w", target, err)
	}
	logger.Printf("WebSocket connection opened")

	c := &WebSocketConn{
		conn:     conn,
		owner:    h,
		logger:   logger,
		received: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go c.readMessages()
	return c, nil
}

func (c *WebSocketConn) readMessages() {
	defer close(c.done)
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Printf("WebSocket connection closed")
			} else {
				c.logger.Printf("WebSocket error: %s", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			c.logger.Printf("Ignoring non-text WebSocket frame (%d bytes)", len(data))
			continue
		}
		var m ldvalue.Value
		if err := json.Unmarshal(data, &m); err != nil {
			c.logger.Printf("Ignoring malformed WebSocket message: %s", string(data))
			continue
		}
		c.logger.Printf("WebSocket received: %s", string(data))

		// The harness list must never lag behind this connection's list.
		c.owner.recordWebSocketMessage(m)
		c.lock.Lock()
		c.messages = append(c.messages, m)
		c.lock.Unlock()

		select { // non-blocking wakeup
		case c.received <- struct{}{}:
		default:
		}
	}
}

// SendJSON writes a value as a single text frame.
func (c *WebSocketConn) SendJSON(value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.logger.Printf("WebSocket sending: %s", string(data))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Messages returns the messages received so far, in arrival order.
func (c *WebSocketConn) Messages() []ldvalue.Value {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]ldvalue.Value(nil), c.messages...)
}

// AwaitMessages waits until at least count messages have been received in total, and returns
// all of them. If the timeout elapses or the server closes the connection first, it returns
// whatever was received along with an error.
func (c *WebSocketConn) AwaitMessages(count int, timeout time.Duration) ([]ldvalue.Value, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		messages := c.Messages()
		if len(messages) >= count {
			return messages, nil
		}
		select {
		case <-c.received:
		case <-c.done:
			messages = c.Messages()
			if len(messages) >= count {
				return messages, nil
			}
			return messages, errors.New("WebSocket connection closed before the expected messages arrived")
		case <-deadline.C:
			return c.Messages(), fmt.Errorf("timed out after %s waiting for %d WebSocket message(s)", timeout, count)
		}
	}
}

// Close sends a normal close frame, waits briefly for the server to acknowledge it, and then
// releases the connection. It is safe to call more than once.
func (c *WebSocketConn) Close() error {
	var err error
	c.closing.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))

		deadline := time.NewTimer(webSocketCloseTimeout)
		defer deadline.Stop()
		select {
		case <-c.done:
		case <-deadline.C:
			c.logger.Printf("Server did not acknowledge WebSocket close within %s", webSocketCloseTimeout)
		}
		err = c.conn.Close()
		<-c.done
	})
	return err
}
