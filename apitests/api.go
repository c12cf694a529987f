package apitests

import (
	"time"

	"github.com/allarco/chat-booking-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultWebSocketTimeout is used when SuiteOptions.WebSocketTimeout is not set.
const DefaultWebSocketTimeout = time.Second * 3

// SuiteOptions adjusts how the suite runs. The zero value is usable.
type SuiteOptions struct {
	// WebSocketTimeout is how long the WebSocket check waits for the first message.
	WebSocketTimeout time.Duration
}

// suiteState carries values that one check produces and later checks depend on.
type suiteState struct {
	opts                SuiteOptions
	guestConversationID ldvalue.Value
	userConversationID  ldvalue.Value
}

// conversationID is the ID that checks on an existing conversation use: the guest conversation
// if one was started, otherwise the user conversation.
func (s *suiteState) conversationID() ldvalue.Value {
	if framework.Truthy(s.guestConversationID) {
		return s.guestConversationID
	}
	return s.userConversationID
}

// T represents a check or group of checks in the API contract test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. Those features are provided by the lower-level framework
// package. To make assertions, you can use the assert and require packages, passing the *T as if
// it were a *testing.T.
//
// T also knows how to talk to the server under test. Request methods fail the check and exit
// immediately if no HTTP response is received, so checks only need to deal with responses.
type T struct {
	context *framework.Context
	harness *framework.TestHarness
	state   *suiteState
}

func newTestScope(context *framework.Context, harness *framework.TestHarness, state *suiteState) *T {
	return &T{
		context: context,
		harness: harness,
		state:   state,
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Failf logs a failure and exits the check.
func (t *T) Failf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
	t.context.FailNow()
}

// Passf sets the message reported for this check if it passes.
func (t *T) Passf(format string, args ...interface{}) {
	t.context.Passf(format, args...)
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.harness, t.state))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Request sends a JSON request to an API endpoint and returns the response, whatever its status.
// If there is no response at all, the check fails with the transport error and exits.
func (t *T) Request(method, endpoint string, body interface{}) *framework.Response {
	resp, err := t.harness.Request(method, endpoint, body, nil, t.context.DebugLogger())
	if err != nil {
		t.Failf("%s", err)
	}
	return resp
}

// RequireOutcome classifies a response against the check's expectation table, and passes or
// fails the check accordingly. The response body becomes the check's payload.
func (t *T) RequireOutcome(resp *framework.Response, expectations framework.ExpectationTable) {
	if body, err := resp.JSON(); err == nil {
		t.context.SetPayload(body)
	}
	verdict := expectations.Evaluate(resp)
	if verdict.Pass {
		t.Passf("%s", verdict.Message)
		return
	}
	t.Errorf("%s", verdict.Message)
}

// statusCheck is a check that passes only if the server answers with one specific status.
type statusCheck struct {
	method      string
	endpoint    string
	body        interface{}
	rawBody     []byte // sent as is instead of body, if set
	status      int
	expected    string // how the expected status is described in a failure
	passMessage string
}

// RequireStatus performs a statusCheck. Unlike Request, a transport error is reported as the
// check's own failure message rather than the raw error.
func (t *T) RequireStatus(c statusCheck) {
	var resp *framework.Response
	var err error
	if c.rawBody != nil {
		resp, err = t.harness.RawRequest(c.method, c.endpoint, "application/json", c.rawBody, t.context.DebugLogger())
	} else {
		resp, err = t.harness.Request(c.method, c.endpoint, c.body, nil, t.context.DebugLogger())
	}
	if err != nil {
		t.Debug("Request failed: %s", err)
		t.Failf("Expected %s, got connection error", c.expected)
	}
	if body, err := resp.JSON(); err == nil {
		t.context.SetPayload(body)
	}
	if resp.StatusCode != c.status {
		t.Failf("Expected %s, got %d", c.expected, resp.StatusCode)
	}
	t.Passf("%s", c.passMessage)
}

// RequireConversationID returns the conversation ID captured by an earlier check. If there is
// none, the check fails without sending anything.
func (t *T) RequireConversationID() ldvalue.Value {
	id := t.state.conversationID()
	if !framework.Truthy(id) {
		t.Failf("No conversation ID provided")
	}
	t.Debug("Using conversation ID %s", id.JSONString())
	return id
}
