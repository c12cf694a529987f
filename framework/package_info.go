// Package framework contains the low-level implementation of the contract test harness that
// does not depend on what API is being tested.
//
// The general model is:
//
// 1. The test harness talks to a running server through its HTTP API, and optionally through
// WebSocket connections. Transport problems are reported as errors; HTTP status codes never
// are, since many checks expect an error status.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// pass/fail results. Every check that runs produces exactly one TestResult.
//
// 3. What counts as a passing response is described by an ExpectationTable, so that checks
// with more than one acceptable outcome state them as data.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the requests to send and the expectations for each endpoint.
package framework
