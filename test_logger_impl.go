package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/allarco/chat-booking-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	passLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel    = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(result framework.TestResult, debugOutput framework.CapturedOutput) {
	if result.Success {
		fmt.Fprintf(c.Out, "  %s: %s\n", passLabel("PASS"), result.Message)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s\n", failLabel("FAIL"), result.TestID)
	}
	failed := !result.Success
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s: %s\n", skippedLabel("SKIPPED"), id)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s (%s)\n", skippedLabel("SKIPPED"), id, reason)
	}
}
