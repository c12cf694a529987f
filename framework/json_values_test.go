package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestTruthy(t *testing.T) {
	for _, v := range []string{`true`, `1`, `-0.5`, `"x"`, `[0]`, `{"a":null}`} {
		assert.True(t, Truthy(ldvalue.Parse([]byte(v))), v)
	}
	for _, v := range []string{`null`, `false`, `0`, `""`, `[]`, `{}`} {
		assert.False(t, Truthy(ldvalue.Parse([]byte(v))), v)
	}
}

func TestHasKey(t *testing.T) {
	obj := ldvalue.Parse([]byte(`{"count":null,"other":0}`))
	assert.True(t, HasKey(obj, "count"))
	assert.True(t, HasKey(obj, "other"))
	assert.False(t, HasKey(obj, "missing"))
	assert.False(t, HasKey(ldvalue.String("count"), "count"))
}

func TestPathSegment(t *testing.T) {
	assert.Equal(t, "abc-123", PathSegment(ldvalue.String("abc-123")))
	assert.Equal(t, "42", PathSegment(ldvalue.Int(42)))
}
