package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testID(path ...string) TestID {
	return TestID{Path: path}
}

func TestEmptyFiltersSelectEverything(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(testID("chat", "send message")))
}

func TestRunPatternMatchesLevelByLevel(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("chat$/send"))

	assert.True(t, f.AsFilter(testID("chat")), "group must be selected so its checks can run")
	assert.True(t, f.AsFilter(testID("chat", "send message")))
	assert.False(t, f.AsFilter(testID("chat", "unread count")))
	assert.False(t, f.AsFilter(testID("chat admin")))
	assert.False(t, f.AsFilter(testID("chat admin", "send")))
}

func TestSkipPatternMatchesWholePath(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustNotMatch.Set("admin/.*delete"))

	assert.True(t, f.AsFilter(testID("chat admin")))
	assert.True(t, f.AsFilter(testID("chat admin", "archive")))
	assert.False(t, f.AsFilter(testID("chat admin", "delete")))
}

func TestInvalidPatternIsRejected(t *testing.T) {
	var f RegexFilters
	assert.Error(t, f.MustMatch.Set("chat/("))
	assert.Error(t, f.MustNotMatch.Set("("))
	assert.False(t, f.MustMatch.IsDefined())
}

func TestExactMatchPattern(t *testing.T) {
	id := testID("booking lookup", "download confirmation PDF")
	pattern := ExactMatchPattern(id)
	assert.Equal(t, "^booking lookup$/^download confirmation PDF$", pattern)

	var f RegexFilters
	require.NoError(t, f.MustMatch.Set(pattern))
	assert.True(t, f.AsFilter(testID("booking lookup")))
	assert.True(t, f.AsFilter(id))
	assert.False(t, f.AsFilter(testID("booking lookup", "find reservation")))
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Empty(t, buf.String())

	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("chat"))
	require.NoError(t, f.MustNotMatch.Set("websocket"))
	PrintFilterDescription(&buf, f)
	assert.Contains(t, buf.String(), `skip any not matching "chat"`)
	assert.Contains(t, buf.String(), `skip any matching "websocket"`)
}
