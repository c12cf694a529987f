package apitests

import (
	"net/http"

	"github.com/allarco/chat-booking-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoErrorHandlingTests(t *T) {
	t.Run("non-existent conversation", func(t *T) {
		t.RequireStatus(statusCheck{
			method:      http.MethodGet,
			endpoint:    servicedef.ChatConversationPath(nonexistentConversationID),
			status:      http.StatusNotFound,
			expected:    "404",
			passMessage: "Correctly returns 404",
		})
	})

	t.Run("malformed JSON", func(t *T) {
		t.RequireStatus(statusCheck{
			method:      http.MethodPost,
			endpoint:    servicedef.ChatStartPath,
			rawBody:     malformedJSONBody,
			status:      http.StatusBadRequest,
			expected:    "400",
			passMessage: "Correctly handles malformed JSON",
		})
	})

	t.Run("missing fields", func(t *T) {
		t.RequireStatus(statusCheck{
			method:      http.MethodPost,
			endpoint:    servicedef.ChatSendPath,
			body:        servicedef.SendMessageParams{ConversationID: ldvalue.Int(1)},
			status:      http.StatusBadRequest,
			expected:    "400",
			passMessage: "Correctly validates required fields",
		})
	})
}
