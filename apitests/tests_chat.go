package apitests

import (
	"fmt"
	"net/http"

	"github.com/allarco/chat-booking-contract-tests/framework"
	"github.com/allarco/chat-booking-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoChatTests(t *T) {
	t.Run("start conversation as guest", func(t *T) {
		t.state.guestConversationID = startConversation(t, guestConversation, "Conversation created with ID: %s")
	})

	t.Run("start conversation as user", func(t *T) {
		t.state.userConversationID = startConversation(t, userConversation, "User conversation created with ID: %s")
	})

	t.Run("send message", func(t *T) {
		id := t.RequireConversationID()
		resp := t.Request(http.MethodPost, servicedef.ChatSendPath, servicedef.SendMessageParams{
			ConversationID: id,
			Content:        followUpMessage,
		})
		t.RequireOutcome(resp, framework.ExpectationTable{
			{
				Status:       http.StatusOK,
				Pass:         true,
				Success:      framework.SuccessTrue,
				TruthyFields: []string{"message"},
				Message:      staticMessage("Message sent successfully"),
			},
		})
	})

	t.Run("get conversation", func(t *T) {
		id := t.RequireConversationID()
		resp := t.Request(http.MethodGet, servicedef.ChatConversationPath(framework.PathSegment(id)), nil)
		t.RequireOutcome(resp, framework.ExpectationTable{
			{
				Status:       http.StatusOK,
				Pass:         true,
				Success:      framework.SuccessTrue,
				TruthyFields: []string{"conversation"},
				Message: func(r *framework.Response) string {
					return fmt.Sprintf("Retrieved conversation with %d messages", countOf(r, "messages"))
				},
			},
			{
				Status:  http.StatusNotFound,
				Message: staticMessage("Conversation not found"),
			},
		})
	})

	t.Run("guest conversation lookup", func(t *T) {
		if !framework.Truthy(t.state.guestConversationID) {
			t.Failf("No guest conversation was started")
		}
		resp := t.Request(http.MethodPost, servicedef.ChatGuestConversationPath, servicedef.GuestConversationParams{
			Email: guestConversation.GuestEmail,
		})
		t.RequireOutcome(resp, framework.ExpectationTable{
			{
				Status:       http.StatusOK,
				Pass:         true,
				Success:      framework.SuccessTrue,
				TruthyFields: []string{"conversation"},
				Message: func(r *framework.Response) string {
					return fmt.Sprintf("Found guest conversation with %d messages", countOf(r, "messages"))
				},
			},
			{
				Status:  http.StatusNotFound,
				Message: staticMessage("No conversation found for the guest email"),
			},
		})
	})

	t.Run("unread count", func(t *T) {
		resp := t.Request(http.MethodGet, servicedef.ChatUnreadCountPath, nil)
		t.RequireOutcome(resp, framework.ExpectationTable{
			{
				Status:        http.StatusOK,
				Pass:          true,
				Success:       framework.SuccessTrue,
				PresentFields: []string{"count"},
				Message: func(r *framework.Response) string {
					return "Unread count: " + bodyOf(r).GetByKey("count").JSONString()
				},
			},
		})
	})

	t.Run("my conversations requires authentication", func(t *T) {
		resp := t.Request(http.MethodGet, servicedef.ChatMyConversationsPath, nil)
		t.RequireOutcome(resp, authRequiredExpectations(nil, "Correctly rejects the unauthenticated request"))
	})
}

func startConversation(t *T, params servicedef.StartConversationParams, passFormat string) ldvalue.Value {
	resp := t.Request(http.MethodPost, servicedef.ChatStartPath, params)
	t.RequireOutcome(resp, framework.ExpectationTable{
		{
			Status:       http.StatusOK,
			Pass:         true,
			Success:      framework.SuccessTrue,
			TruthyFields: []string{"conversationId"},
			Message: func(r *framework.Response) string {
				return fmt.Sprintf(passFormat, framework.PathSegment(bodyOf(r).GetByKey("conversationId")))
			},
		},
	})
	if t.context.Failed() {
		return ldvalue.Null()
	}
	return bodyOf(resp).GetByKey("conversationId")
}

// authRequiredExpectations accepts a rejection of an unauthenticated caller, with forbidden as
// the message for a 403. If allowed is non-nil, it is also accepted, for endpoints where the
// server may legitimately let the request through.
func authRequiredExpectations(allowed *framework.Expectation, forbidden string) framework.ExpectationTable {
	var table framework.ExpectationTable
	if allowed != nil {
		table = append(table, *allowed)
	}
	return append(table,
		framework.Expectation{
			Status:  http.StatusUnauthorized,
			Pass:    true,
			Message: staticMessage("Correctly requires authentication"),
		},
		framework.Expectation{
			Status:  http.StatusForbidden,
			Pass:    true,
			Message: staticMessage(forbidden),
		},
	)
}

func staticMessage(message string) func(*framework.Response) string {
	return func(*framework.Response) string { return message }
}

// bodyOf returns the decoded response body, or null if it was not JSON.
func bodyOf(r *framework.Response) ldvalue.Value {
	body, _ := r.JSON()
	return body
}

func countOf(r *framework.Response, key string) int {
	v := bodyOf(r).GetByKey(key)
	if v.Type() != ldvalue.ArrayType {
		return 0
	}
	return v.Count()
}
