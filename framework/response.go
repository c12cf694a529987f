package framework

import (
	"encoding/json"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is a fully read HTTP response from the server under test.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	json       ldvalue.Value
	jsonErr    error
}

func newResponse(status int, header http.Header, body []byte) *Response {
	r := &Response{StatusCode: status, Header: header, Body: body}
	if err := json.Unmarshal(body, &r.json); err != nil {
		r.json = ldvalue.Null()
		r.jsonErr = err
	}
	return r
}

// JSON returns the decoded body, or an error if the body is not valid JSON.
func (r *Response) JSON() (ldvalue.Value, error) {
	return r.json, r.jsonErr
}

func (r *Response) IsJSON() bool {
	return r.jsonErr == nil
}

func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

func (r *Response) Text() string {
	return string(r.Body)
}
