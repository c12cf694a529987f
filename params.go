package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/allarco/chat-booking-contract-tests/apitests"
	"github.com/allarco/chat-booking-contract-tests/framework"

	"github.com/alessio/shellescape"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// environmentDefaults are the settings that can come from the environment. A command-line flag
// always takes precedence over them.
type environmentDefaults struct {
	BaseURL          string        `env:"CONTRACT_TESTS_BASE_URL" envDefault:"http://localhost:3000"`
	WebSocketTimeout time.Duration `env:"CONTRACT_TESTS_WS_TIMEOUT"`
	RequestTimeout   time.Duration `env:"CONTRACT_TESTS_REQUEST_TIMEOUT" envDefault:"0s"`
}

type commandParams struct {
	baseURL          string
	filters          framework.RegexFilters
	debug            bool
	debugAll         bool
	webSocketTimeout time.Duration
	requestTimeout   time.Duration
	envFile          string
}

// Read parses the command line. environ is the process environment in os.Environ form; variables
// set there override anything in the -env-file.
func (c *commandParams) Read(args []string, environ []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.baseURL, "url", "", "base URL of the server under test (default $CONTRACT_TESTS_BASE_URL or http://localhost:3000)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.DurationVar(&c.webSocketTimeout, "ws-timeout", 0, "how long to wait for WebSocket messages (default $CONTRACT_TESTS_WS_TIMEOUT or 3s)")
	fs.DurationVar(&c.requestTimeout, "request-timeout", 0, "timeout for each HTTP request, 0 for none (default $CONTRACT_TESTS_REQUEST_TIMEOUT)")
	fs.StringVar(&c.envFile, "env-file", "", "file of KEY=value lines to read default settings from")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}

	defaults, err := loadEnvironmentDefaults(c.envFile, environ)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return false
	}
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if !explicit["url"] {
		c.baseURL = defaults.BaseURL
	}
	if !explicit["ws-timeout"] {
		c.webSocketTimeout = defaults.WebSocketTimeout
	}
	if !explicit["request-timeout"] {
		c.requestTimeout = defaults.RequestTimeout
	}
	if c.baseURL == "" {
		fmt.Fprintln(errOut, "-url must not be empty")
		fs.Usage()
		return false
	}
	return true
}

func loadEnvironmentDefaults(envFile string, environ []string) (environmentDefaults, error) {
	vars := make(map[string]string)
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil {
			return environmentDefaults{}, fmt.Errorf("cannot read env file: %w", err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	var defaults environmentDefaults
	if err := env.ParseWithOptions(&defaults, env.Options{Environment: vars}); err != nil {
		return environmentDefaults{}, fmt.Errorf("invalid environment settings: %w", err)
	}
	if defaults.WebSocketTimeout <= 0 {
		defaults.WebSocketTimeout = apitests.DefaultWebSocketTimeout
	}
	return defaults, nil
}

// rerunCommand builds a command line that repeats the run, selecting only the checks that failed.
func (c commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program, "-url", c.baseURL)
	for _, f := range failures {
		if len(f.TestID.Path) == 0 {
			continue
		}
		b.add("-run", framework.ExactMatchPattern(f.TestID))
	}
	if c.webSocketTimeout != apitests.DefaultWebSocketTimeout {
		b.add("-ws-timeout", c.webSocketTimeout.String())
	}
	if c.requestTimeout != 0 {
		b.add("-request-timeout", c.requestTimeout.String())
	}
	if c.debugAll {
		b.add("-debug-all")
	} else {
		b.add("-debug")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
