package framework

import (
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Results is the ordered record of every check that ran. Tests is in execution order;
// Failures is the subset of Tests that did not pass.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestID
}

// TestResult is created once when a check finishes and is not modified afterward.
type TestResult struct {
	TestID  TestID
	Success bool
	Message string
	Payload ldvalue.Value // the decoded response body, if the check had one
	Errors  []error
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Summary computes the aggregate counts shown at the end of a run.
func (r Results) Summary() Summary {
	s := Summary{Total: len(r.Tests)}
	for _, t := range r.Tests {
		if t.Success {
			s.Passed++
		}
	}
	s.Failed = s.Total - s.Passed
	return s
}

type Summary struct {
	Total  int
	Passed int
	Failed int
}

// SuccessRate is the percentage of checks that passed, or zero if nothing ran.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total) * 100
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

func (t TestID) isRoot() bool {
	return len(t.Path) == 0
}
