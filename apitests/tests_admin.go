package apitests

import (
	"fmt"
	"net/http"

	"github.com/allarco/chat-booking-contract-tests/framework"
	"github.com/allarco/chat-booking-contract-tests/servicedef"
)

// DoChatAdminTests checks the admin chat endpoints. The harness has no admin credentials, so a
// 401 or 403 is as good as a successful response; what must not happen is an error, or a
// malformed success.
func DoChatAdminTests(t *T) {
	t.Run("list conversations", func(t *T) {
		resp := t.Request(http.MethodGet, servicedef.ChatAdminConversationsPath, nil)
		t.RequireOutcome(resp, authRequiredExpectations(&framework.Expectation{
			Status:        http.StatusOK,
			Pass:          true,
			Success:       framework.SuccessTrue,
			PresentFields: []string{"conversations"},
			Message: func(r *framework.Response) string {
				return fmt.Sprintf("Retrieved %d conversations", countOf(r, "conversations"))
			},
		}, adminRoleRequired))
	})

	t.Run("update status", func(t *T) {
		id := t.RequireConversationID()
		resp := t.Request(http.MethodPatch, servicedef.ChatAdminStatusPath(framework.PathSegment(id)), statusUpdate)
		t.RequireOutcome(resp, authRequiredExpectations(adminSuccess("Status updated successfully"), adminRoleRequired))
	})

	t.Run("archive", func(t *T) {
		id := t.RequireConversationID()
		resp := t.Request(http.MethodPatch, servicedef.ChatAdminArchivePath(framework.PathSegment(id)), nil)
		t.RequireOutcome(resp, authRequiredExpectations(adminSuccess("Conversation archived successfully"), adminRoleRequired))
	})

	t.Run("delete", func(t *T) {
		id := t.RequireConversationID()
		resp := t.Request(http.MethodDelete, servicedef.ChatAdminConversationPath(framework.PathSegment(id)), nil)
		t.RequireOutcome(resp, authRequiredExpectations(adminSuccess("Conversation deleted successfully"), adminRoleRequired))
	})
}

const adminRoleRequired = "Correctly requires admin role"

func adminSuccess(message string) *framework.Expectation {
	return &framework.Expectation{
		Status:  http.StatusOK,
		Pass:    true,
		Success: framework.SuccessTrue,
		Message: staticMessage(message),
	}
}
