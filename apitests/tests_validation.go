package apitests

import (
	"net/http"

	"github.com/allarco/chat-booking-contract-tests/servicedef"
)

func DoValidationTests(t *T) {
	t.Run("chat start", func(t *T) {
		t.RequireStatus(statusCheck{
			method:      http.MethodPost,
			endpoint:    servicedef.ChatStartPath,
			body:        invalidConversation,
			status:      http.StatusBadRequest,
			expected:    "400 validation error",
			passMessage: "Correctly validates input data",
		})
	})

	t.Run("booking lookup", func(t *T) {
		t.RequireStatus(statusCheck{
			method:      http.MethodPost,
			endpoint:    servicedef.BookingLookupFindPath,
			body:        invalidReservationLookup,
			status:      http.StatusBadRequest,
			expected:    "400 validation error",
			passMessage: "Correctly validates input data",
		})
	})
}
