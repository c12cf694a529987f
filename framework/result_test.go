package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeResults(outcomes ...bool) Results {
	var r Results
	for i, ok := range outcomes {
		tr := TestResult{TestID: TestID{Path: []string{"group", string(rune('a' + i))}}, Success: ok}
		if !ok {
			tr.Message = "HTTP 500: oops"
			r.Failures = append(r.Failures, tr)
		}
		r.Tests = append(r.Tests, tr)
	}
	return r
}

func TestSummary(t *testing.T) {
	s := makeResults(true, true, false, true).Summary()
	assert.Equal(t, Summary{Total: 4, Passed: 3, Failed: 1}, s)
	assert.Equal(t, s.Total, s.Passed+s.Failed)
	assert.InDelta(t, 75.0, s.SuccessRate(), 0.001)
}

func TestSummaryOfEmptyRun(t *testing.T) {
	s := Results{}.Summary()
	assert.Equal(t, Summary{}, s)
	assert.Equal(t, 0.0, s.SuccessRate())
	assert.True(t, Results{}.OK())
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, makeResults(true, false, true))
	out := buf.String()

	assert.Contains(t, out, "Total Tests: 3\n")
	assert.Contains(t, out, "Passed: 2\n")
	assert.Contains(t, out, "Failed: 1\n")
	assert.Contains(t, out, "Success Rate: 66.7%\n")
	assert.Contains(t, out, "Failed Tests:\n  * group/b: HTTP 500: oops\n")
	assert.NotContains(t, out, "Skipped")
}

func TestPrintResultsWithNoFailures(t *testing.T) {
	var buf bytes.Buffer
	results := makeResults(true)
	results.Skipped = []TestID{{Path: []string{"websocket"}}}
	PrintResults(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "Success Rate: 100.0%\n")
	assert.Contains(t, out, "Skipped: 1\n")
	assert.NotContains(t, out, "Failed Tests:")
}
