package framework

import (
	"fmt"
	"io"
	"strings"
)

const reportRule = "================================================================================"

// PrintResults writes the end-of-run summary: totals, success rate, and each failed check with
// its message.
func PrintResults(out io.Writer, results Results) {
	s := results.Summary()

	fmt.Fprintln(out, reportRule)
	fmt.Fprintln(out, "TEST SUMMARY")
	fmt.Fprintln(out, reportRule)
	fmt.Fprintf(out, "Total Tests: %d\n", s.Total)
	fmt.Fprintf(out, "Passed: %d\n", s.Passed)
	fmt.Fprintf(out, "Failed: %d\n", s.Failed)
	if len(results.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped: %d\n", len(results.Skipped))
	}
	fmt.Fprintf(out, "Success Rate: %.1f%%\n", s.SuccessRate())

	if len(results.Failures) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Failed Tests:")
		for _, f := range results.Failures {
			msg := strings.ReplaceAll(f.Message, "\n", "\n    ")
			fmt.Fprintf(out, "  * %s: %s\n", f.TestID, msg)
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, reportRule)
}
