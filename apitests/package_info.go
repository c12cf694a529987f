// Package apitests contains the contract checks for the booking and support chat API, and the
// test API they are written against.
//
// Infrastructure that does not depend on this particular API, such as sending requests,
// recording results, and WebSocket plumbing, is in the lower-level framework package.
package apitests
