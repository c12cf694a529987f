package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of a single check or group of checks. It is used in much the same way as
// testing.T, and it satisfies the TestingT interfaces of testify's assert and require packages.
//
// A context that runs subtests is treated as a group: it only contributes a TestResult of its own
// if something outside of its subtests failed.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	message     string
	payload     ldvalue.Value
	errors      []error
	subtests    int
}

// Run runs a test suite. A panic inside a subtest fails that subtest; a panic in action itself,
// outside of any subtest, is passed on to the caller.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

// run executes the action and, unless the context turned out to be a passing group or was
// skipped, appends exactly one TestResult for it.
func (c *Context) run(action func(*Context)) (result TestResult, recorded bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*Context); !ok && c.id.isRoot() {
				panic(r) // not from any check
			}
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if c.skipped || (c.subtests > 0 && !c.failed) || (c.id.isRoot() && !c.failed) {
			return
		}
		result = TestResult{
			TestID:  c.id,
			Success: !c.failed,
			Message: c.resultMessage(),
			Payload: c.payload,
			Errors:  c.errors,
		}
		recorded = true
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
	return
}

func (c *Context) resultMessage() string {
	if !c.failed || len(c.errors) == 0 {
		return c.message
	}
	msgs := make([]string, 0, len(c.errors))
	for _, e := range c.errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func (c *Context) ID() TestID {
	return c.id
}

func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}
	c.subtests++

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.results.Skipped = append(c.env.results.Skipped, id)
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	result, recorded := c1.run(action)
	switch {
	case c1.skipped:
		c.env.results.Skipped = append(c.env.results.Skipped, id)
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	case recorded:
		c.env.testLogger.TestFinished(result, c1.debugLogger.Output())
	}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// Passf sets the message that is reported for this check if it does not fail.
func (c *Context) Passf(format string, args ...interface{}) {
	c.message = fmt.Sprintf(format, args...)
}

// SetPayload attaches the response data that the check's verdict was based on.
func (c *Context) SetPayload(payload ldvalue.Value) {
	c.payload = payload
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
