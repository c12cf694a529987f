package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/allarco/chat-booking-contract-tests/apitests"
	"github.com/allarco/chat-booking-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readParams(t *testing.T, environ []string, args ...string) (commandParams, bool, string) {
	var p commandParams
	var errOut bytes.Buffer
	ok := p.Read(append([]string{"contract-tests"}, args...), environ, &errOut)
	return p, ok, errOut.String()
}

func TestParamsDefaults(t *testing.T) {
	p, ok, _ := readParams(t, nil)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:3000", p.baseURL)
	assert.Equal(t, time.Second*3, p.webSocketTimeout)
	assert.Equal(t, time.Duration(0), p.requestTimeout)
	assert.False(t, p.debug)
	assert.False(t, p.filters.MustMatch.IsDefined())
}

func TestParamsFromEnvironment(t *testing.T) {
	p, ok, _ := readParams(t, []string{
		"CONTRACT_TESTS_BASE_URL=https://staging.example.com",
		"CONTRACT_TESTS_WS_TIMEOUT=500ms",
		"CONTRACT_TESTS_REQUEST_TIMEOUT=20s",
		"UNRELATED=x=y",
	})
	require.True(t, ok)
	assert.Equal(t, "https://staging.example.com", p.baseURL)
	assert.Equal(t, time.Millisecond*500, p.webSocketTimeout)
	assert.Equal(t, time.Second*20, p.requestTimeout)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	p, ok, _ := readParams(t,
		[]string{"CONTRACT_TESTS_BASE_URL=https://staging.example.com", "CONTRACT_TESTS_WS_TIMEOUT=5s"},
		"-url", "http://127.0.0.1:5000", "-ws-timeout", "1s", "-run", "chat", "-skip", "admin", "-debug")
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1:5000", p.baseURL)
	assert.Equal(t, time.Second, p.webSocketTimeout)
	assert.True(t, p.debug)
	assert.True(t, p.filters.MustMatch.IsDefined())
	assert.True(t, p.filters.MustNotMatch.IsDefined())
}

func TestZeroWebSocketTimeoutInEnvironmentMeansDefault(t *testing.T) {
	p, ok, _ := readParams(t, []string{"CONTRACT_TESTS_WS_TIMEOUT=0s"})
	require.True(t, ok)
	assert.Equal(t, apitests.DefaultWebSocketTimeout, p.webSocketTimeout)
}

func TestEnvFileProvidesDefaultsBelowProcessEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract-tests.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"CONTRACT_TESTS_BASE_URL=http://from-file:3000\nCONTRACT_TESTS_WS_TIMEOUT=7s\n"), 0o600))

	p, ok, _ := readParams(t, []string{"CONTRACT_TESTS_WS_TIMEOUT=2s"}, "-env-file", path)
	require.True(t, ok)
	assert.Equal(t, "http://from-file:3000", p.baseURL)
	assert.Equal(t, time.Second*2, p.webSocketTimeout)
}

func TestInvalidParams(t *testing.T) {
	_, ok, errText := readParams(t, []string{"CONTRACT_TESTS_WS_TIMEOUT=soon"})
	assert.False(t, ok)
	assert.Contains(t, errText, "invalid environment settings")

	_, ok, errText = readParams(t, nil, "-env-file", filepath.Join(t.TempDir(), "missing.env"))
	assert.False(t, ok)
	assert.Contains(t, errText, "cannot read env file")

	_, ok, _ = readParams(t, nil, "-run", "(")
	assert.False(t, ok)

	_, ok, errText = readParams(t, nil, "extra")
	assert.False(t, ok)
	assert.Contains(t, errText, "unexpected arguments: extra")

	_, ok, _ = readParams(t, nil, "-url", "")
	assert.False(t, ok)
}

func TestRerunCommand(t *testing.T) {
	p, ok, _ := readParams(t, nil, "-url", "http://127.0.0.1:3000")
	require.True(t, ok)

	failures := []framework.TestResult{
		{TestID: framework.TestID{Path: []string{"chat", "send message"}}},
		{TestID: framework.TestID{Path: []string{"websocket", "connection"}}},
	}
	assert.Equal(t,
		`./contract-tests -url http://127.0.0.1:3000 -run '^chat$/^send message$' -run '^websocket$/^connection$' -debug`,
		p.rerunCommand("./contract-tests", failures))

	withRootFailure := append([]framework.TestResult{{Message: "setup failed"}}, failures...)
	assert.Equal(t, p.rerunCommand("./contract-tests", failures), p.rerunCommand("./contract-tests", withRootFailure))

	p.webSocketTimeout = time.Second * 10
	p.debugAll = true
	assert.Contains(t, p.rerunCommand("./contract-tests", failures), "-ws-timeout 10s -debug-all")
}
