package framework

import (
	"fmt"
	"strings"
)

// SuccessFlag describes what a check requires of the "success" property in a JSON response.
type SuccessFlag int

const (
	SuccessAny SuccessFlag = iota
	SuccessTrue
	SuccessFalse
)

// Expectation is one row of an ExpectationTable. A row applies when the response status equals
// Status; the remaining fields describe what the response must look like for the row's verdict
// to stand. If the status matches but the shape does not, the check fails.
type Expectation struct {
	Status int
	Pass   bool

	Success       SuccessFlag
	TruthyFields  []string // each must be present with a non-empty, non-zero, non-false value
	PresentFields []string // each must be present, with any value including null
	ContentType   string   // substring of the Content-Type header; the body need not be JSON
	AllowNonJSON  bool     // a body that is not JSON satisfies the row as is

	// Message describes the matched outcome. If nil, a generic message is used.
	Message func(*Response) string
	// Violation describes a shape mismatch. If nil, the body is echoed.
	Violation func(*Response) string
}

// ExpectationTable lists the outcomes a check knows about, in priority order. Any response whose
// status is not in the table is a failure.
type ExpectationTable []Expectation

type Verdict struct {
	Pass    bool
	Message string
}

func (t ExpectationTable) Evaluate(r *Response) Verdict {
	for _, e := range t {
		if e.Status != r.StatusCode {
			continue
		}
		if !e.shapeMatches(r) {
			if e.Violation != nil {
				return Verdict{Message: e.Violation(r)}
			}
			return Verdict{Message: "Invalid response structure: " + describeResponseBody(r)}
		}
		if e.Message != nil {
			return Verdict{Pass: e.Pass, Message: e.Message(r)}
		}
		return Verdict{Pass: e.Pass, Message: fmt.Sprintf("HTTP %d", r.StatusCode)}
	}
	return Verdict{Message: fmt.Sprintf("HTTP %d: %s", r.StatusCode, r.Text())}
}

func (e Expectation) shapeMatches(r *Response) bool {
	if e.ContentType != "" && !strings.Contains(r.ContentType(), e.ContentType) {
		return false
	}
	if e.Success == SuccessAny && len(e.TruthyFields) == 0 && len(e.PresentFields) == 0 {
		return true
	}
	body, err := r.JSON()
	if err != nil {
		return e.AllowNonJSON
	}
	switch e.Success {
	case SuccessTrue:
		if !Truthy(body.GetByKey("success")) {
			return false
		}
	case SuccessFalse:
		if Truthy(body.GetByKey("success")) {
			return false
		}
	}
	for _, f := range e.TruthyFields {
		if !Truthy(body.GetByKey(f)) {
			return false
		}
	}
	for _, f := range e.PresentFields {
		if !HasKey(body, f) {
			return false
		}
	}
	return true
}

func describeResponseBody(r *Response) string {
	if body, err := r.JSON(); err == nil {
		return body.JSONString()
	}
	return r.Text()
}
