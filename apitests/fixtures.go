package apitests

import "github.com/allarco/chat-booking-contract-tests/servicedef"

// Request bodies used by the checks. The booking fixture may or may not exist on the server;
// the lookup checks accept either outcome.
var (
	guestConversation = servicedef.StartConversationParams{
		Message:    "Hello, I need help with booking",
		GuestName:  "John Doe",
		GuestEmail: "john@example.com",
	}
	userConversation = servicedef.StartConversationParams{
		Message: "I have a question about my stay",
		UserID:  "user123",
	}
	followUpMessage   = "Thank you for your help"
	statusUpdate      = servicedef.UpdateConversationStatusParams{Status: "closed", AssignedTo: "admin123"}
	reservationLookup = servicedef.FindReservationParams{
		ConfirmationCode: "ARCO123456",
		Email:            "marco.rossi@email.it",
	}

	invalidConversation = servicedef.StartConversationParams{
		Message:    "",
		GuestEmail: "invalid-email",
	}
	invalidReservationLookup = servicedef.FindReservationParams{
		ConfirmationCode: "",
		Email:            "not-an-email",
	}

	nonexistentConversationID = "99999"
	malformedJSONBody         = []byte("invalid json")

	webSocketUserID  = "test123"
	webSocketIsAdmin = "false"
)
