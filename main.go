package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/allarco/chat-booking-contract-tests/apitests"
	"github.com/allarco/chat-booking-contract-tests/framework"
	"github.com/allarco/chat-booking-contract-tests/logging"
)

func main() {
	var params commandParams
	if !params.Read(os.Args, os.Environ(), os.Stderr) {
		os.Exit(1)
	}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		<-interrupts
		fmt.Println()
		fmt.Println("Tests interrupted by user")
		os.Exit(1)
	}()

	os.Exit(runTests(params, os.Args[0], os.Stdout, apitests.RunTestSuite))
}

type suiteRunner func(
	*framework.TestHarness,
	framework.Filter,
	framework.TestLogger,
	apitests.SuiteOptions,
) framework.Results

// runTests runs the suite and returns the process exit code.
func runTests(params commandParams, program string, out io.Writer, runSuite suiteRunner) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(out, "\nUnexpected error: %v\n", r)
			exitCode = 1
		}
	}()

	mainDebugLogger := logging.NewConsoleLogger(out, params.debugAll)

	harness, err := framework.NewTestHarness(
		params.baseURL,
		params.requestTimeout,
		mainDebugLogger.WithComponent("harness"),
	)
	if err != nil {
		fmt.Fprintf(out, "Invalid parameters: %s\n", err)
		return 1
	}

	fmt.Fprintln(out, "Starting API contract tests")
	fmt.Fprintf(out, "Testing server at: %s\n", harness.BaseURL())
	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)

	mainDebugLogger.Printf("WebSocket timeout %s", params.webSocketTimeout)

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := runSuite(harness, params.filters.AsFilter, testLogger, apitests.SuiteOptions{
		WebSocketTimeout: params.webSocketTimeout,
	})

	fmt.Fprintln(out)
	framework.PrintResults(out, results)
	if !results.OK() {
		fmt.Fprintln(out, "To run only the failed tests again:")
		fmt.Fprintf(out, "  %s\n", params.rerunCommand(program, results.Failures))
		return 1
	}
	return 0
}
