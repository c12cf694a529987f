// Package servicedef describes the HTTP and WebSocket API of the booking and support chat
// server: endpoint paths relative to the /api prefix, and the JSON request bodies it accepts.
package servicedef

import (
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	ChatStartPath              = "/chat/start"
	ChatSendPath               = "/chat/send"
	ChatUnreadCountPath        = "/chat/unread-count"
	ChatMyConversationsPath    = "/chat/my-conversations"
	ChatGuestConversationPath  = "/chat/guest-conversation"
	ChatAdminConversationsPath = "/chat/admin/conversations"

	BookingLookupFindPath     = "/booking-lookup/find"
	BookingLookupDownloadPath = "/booking-lookup/download-confirmation"

	WebSocketHealthPath = "/ws/health"

	// ChatWebSocketPath is not under the /api prefix.
	ChatWebSocketPath = "/ws/chat"
)

func ChatConversationPath(id string) string {
	return fmt.Sprintf("/chat/conversation/%s", id)
}

func ChatAdminConversationPath(id string) string {
	return fmt.Sprintf("/chat/admin/conversation/%s", id)
}

func ChatAdminStatusPath(id string) string {
	return ChatAdminConversationPath(id) + "/status"
}

func ChatAdminArchivePath(id string) string {
	return ChatAdminConversationPath(id) + "/archive"
}

// StartConversationParams is the body of POST /chat/start. A guest supplies a name and email;
// a signed-in user supplies a user ID instead.
type StartConversationParams struct {
	Message    string `json:"message"`
	GuestName  string `json:"guestName,omitempty"`
	GuestEmail string `json:"guestEmail,omitempty"`
	UserID     string `json:"userId,omitempty"`
}

type SendMessageParams struct {
	ConversationID ldvalue.Value `json:"conversationId"`
	Content        string        `json:"content,omitempty"`
}

type GuestConversationParams struct {
	Email string `json:"email"`
}

type UpdateConversationStatusParams struct {
	Status     string `json:"status"`
	AssignedTo string `json:"assignedTo,omitempty"`
}

// FindReservationParams is the body of both booking lookup endpoints.
type FindReservationParams struct {
	ConfirmationCode string `json:"confirmationCode"`
	Email            string `json:"email"`
}

const (
	WSMessagePing      = "ping"
	WSMessagePong      = "pong"
	WSMessageConnected = "connected"
)

type WSMessage struct {
	Type string `json:"type"`
}
