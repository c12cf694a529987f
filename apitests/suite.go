package apitests

import (
	"github.com/allarco/chat-booking-contract-tests/framework"
)

// RunTestSuite runs every check, in order, against the server the harness points to.
func RunTestSuite(
	harness *framework.TestHarness,
	filter framework.Filter,
	testLogger framework.TestLogger,
	opts SuiteOptions,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, harness, &suiteState{opts: opts})

		t.Run("chat", DoChatTests)
		t.Run("chat admin", DoChatAdminTests)
		t.Run("booking lookup", DoBookingLookupTests)
		t.Run("validation", DoValidationTests)
		t.Run("error handling", DoErrorHandlingTests)
		t.Run("websocket", DoWebSocketTests)
	})
}
