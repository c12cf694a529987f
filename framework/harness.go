package framework

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const apiPathPrefix = "/api"

// TestHarness holds everything a test run shares: the server's base URL, one HTTP client whose
// connections are reused across requests, and every WebSocket message received during the run.
type TestHarness struct {
	baseURL    *url.URL
	apiBaseURL string
	httpClient *http.Client
	logger     Logger
	wsMessages []ldvalue.Value
	lock       sync.Mutex
}

// NewTestHarness creates a TestHarness for the server at baseURL. A zero requestTimeout means
// requests have no deadline of their own.
func NewTestHarness(
	baseURL string,
	requestTimeout time.Duration,
	debugLogger Logger,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("base URL must be an absolute http or https URL, got %q", baseURL)
	}

	debugLogger.Printf("API base URL is %s%s, request timeout %s", parsed, apiPathPrefix, requestTimeout)
	return &TestHarness{
		baseURL:    parsed,
		apiBaseURL: parsed.String() + apiPathPrefix,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     debugLogger,
	}, nil
}

func (h *TestHarness) BaseURL() string {
	return h.baseURL.String()
}

// APIURL returns the absolute URL of an API endpoint such as "/chat/start".
func (h *TestHarness) APIURL(endpoint string) string {
	return h.apiBaseURL + endpoint
}

// Request sends a request to {base}/api{endpoint}. If body is non-nil it is encoded as JSON. If
// headers is nil, the request carries only "Content-Type: application/json".
//
// Any HTTP response, whatever its status, is returned with a nil error. A *RequestError is
// returned if the method is not one of GET, POST, PATCH, or DELETE, or if no response was
// received.
func (h *TestHarness) Request(
	method, endpoint string,
	body interface{},
	headers http.Header,
	logger Logger,
) (*Response, error) {
	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete:
	default:
		return nil, &RequestError{Kind: UnsupportedMethod, Method: method}
	}

	var data []byte
	if body != nil && (method == http.MethodPost || method == http.MethodPatch) {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return nil, &RequestError{Kind: TransportFailed, Method: method, Err: err}
		}
	}
	if headers == nil {
		headers = make(http.Header)
		headers.Set("Content-Type", "application/json")
	}
	return h.do(method, endpoint, data, headers, logger)
}

// RawRequest sends a body exactly as given, for checks that need to send something that is not
// valid JSON.
func (h *TestHarness) RawRequest(
	method, endpoint, contentType string,
	body []byte,
	logger Logger,
) (*Response, error) {
	headers := make(http.Header)
	headers.Set("Content-Type", contentType)
	return h.do(strings.ToUpper(method), endpoint, body, headers, logger)
}

func (h *TestHarness) do(
	method, endpoint string,
	body []byte,
	headers http.Header,
	logger Logger,
) (*Response, error) {
	if logger == nil {
		logger = h.logger
	}
	target := h.APIURL(endpoint)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
		logger.Printf("%s %s: %s", method, target, string(body))
	} else {
		logger.Printf("%s %s", method, target)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return nil, &RequestError{Kind: TransportFailed, Method: method, Err: err}
	}
	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		re := classifyTransportError(method, err)
		logger.Printf("Request failed: %s (%s)", re, err)
		return nil, re
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Kind: TransportFailed, Method: method, Err: err}
	}
	logger.Printf("Response status %d, content type %q: %s", resp.StatusCode,
		resp.Header.Get("Content-Type"), describeBody(respBody))

	return newResponse(resp.StatusCode, resp.Header, respBody), nil
}

func (h *TestHarness) recordWebSocketMessage(m ldvalue.Value) {
	h.lock.Lock()
	h.wsMessages = append(h.wsMessages, m)
	h.lock.Unlock()
}

// WebSocketMessages returns every message received on any WebSocket opened through this
// harness, in arrival order.
func (h *TestHarness) WebSocketMessages() []ldvalue.Value {
	h.lock.Lock()
	defer h.lock.Unlock()
	return append([]ldvalue.Value(nil), h.wsMessages...)
}

func describeBody(body []byte) string {
	const maxLogged = 2000
	if !utf8.Valid(body) {
		return fmt.Sprintf("(%d bytes of binary data)", len(body))
	}
	if len(body) > maxLogged {
		return fmt.Sprintf("%s... (%d bytes)", string(body[:maxLogged]), len(body))
	}
	return string(body)
}
