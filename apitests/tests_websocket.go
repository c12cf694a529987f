package apitests

import (
	"net/http"
	"net/url"
	"time"

	"github.com/allarco/chat-booking-contract-tests/framework"
	"github.com/allarco/chat-booking-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoWebSocketTests(t *T) {
	t.Run("health", func(t *T) {
		resp := t.Request(http.MethodGet, servicedef.WebSocketHealthPath, nil)
		t.RequireOutcome(resp, framework.ExpectationTable{
			{
				Status:        http.StatusOK,
				Pass:          true,
				PresentFields: []string{"status"},
				Message: func(r *framework.Response) string {
					return "WebSocket server status: " + framework.PathSegment(bodyOf(r).GetByKey("status"))
				},
			},
		})
	})

	t.Run("connection", func(t *T) {
		timeout := t.state.opts.WebSocketTimeout
		if timeout <= 0 {
			timeout = DefaultWebSocketTimeout
		}
		deadline := time.Now().Add(timeout)

		query := url.Values{}
		query.Set("userId", webSocketUserID)
		query.Set("isAdmin", webSocketIsAdmin)
		conn, err := t.harness.OpenWebSocket(servicedef.ChatWebSocketPath, query, t.context.DebugLogger())
		if err != nil {
			t.Failf("WebSocket test failed: %s", err)
		}
		defer conn.Close()

		if err := conn.SendJSON(servicedef.WSMessage{Type: servicedef.WSMessagePing}); err != nil {
			t.Failf("WebSocket test failed: %s", err)
		}

		messages, err := conn.AwaitMessages(1, time.Until(deadline))
		if len(messages) == 0 {
			t.Debug("%s", err)
			t.Failf("Connected but no messages received")
		}
		// The server should also answer the ping. That is not required, but give it the rest of
		// the time budget so the reported count reflects it.
		if !containsMessageType(messages, servicedef.WSMessagePong) {
			if remaining := time.Until(deadline); remaining > 0 {
				messages, _ = conn.AwaitMessages(len(messages)+1, remaining)
			}
		}
		for _, m := range messages {
			t.Debug("Received message of type %q", m.GetByKey("type").StringValue())
		}
		if first := messages[0].GetByKey("type").StringValue(); first != servicedef.WSMessageConnected {
			t.Debug("Expected a %q greeting as the first message, got %q", servicedef.WSMessageConnected, first)
		}
		if !containsMessageType(messages, servicedef.WSMessagePong) {
			t.Debug("No pong received in reply to ping")
		}

		received := t.harness.WebSocketMessages()
		t.context.SetPayload(ldvalue.ArrayOf(received...))
		t.Passf("Connected and received %d messages", len(received))
	})
}

func containsMessageType(messages []ldvalue.Value, messageType string) bool {
	for _, m := range messages {
		if m.GetByKey("type").StringValue() == messageType {
			return true
		}
	}
	return false
}
