package framework

import (
	"errors"
	"net"
	"syscall"
)

type RequestErrorKind int

const (
	// UnsupportedMethod means the request was rejected before any network I/O.
	UnsupportedMethod RequestErrorKind = iota
	// ConnectionFailed means the server could not be reached at all.
	ConnectionFailed
	// TransportFailed covers every other failure to complete an HTTP exchange.
	TransportFailed
)

// RequestError is returned by TestHarness when a request did not produce an HTTP response. An
// HTTP error status is never a RequestError; interpreting the status is up to the caller.
type RequestError struct {
	Kind   RequestErrorKind
	Method string
	Err    error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case UnsupportedMethod:
		return "Unsupported method: " + e.Method
	case ConnectionFailed:
		return "Connection failed - server may not be running"
	default:
		return "Request error: " + e.Err.Error()
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsConnectionFailure reports whether err means the server was unreachable.
func IsConnectionFailure(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Kind == ConnectionFailed
}

func classifyTransportError(method string, err error) *RequestError {
	kind := TransportFailed
	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr),
		errors.As(err, &opErr) && opErr.Op == "dial",
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET):
		kind = ConnectionFailed
	}
	return &RequestError{Kind: kind, Method: method, Err: err}
}
