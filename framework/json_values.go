package framework

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// Truthy reports whether a JSON value counts as set: true, a non-zero number, or a non-empty
// string, array, or object.
func Truthy(v ldvalue.Value) bool {
	switch v.Type() {
	case ldvalue.BoolType:
		return v.BoolValue()
	case ldvalue.NumberType:
		return v.Float64Value() != 0
	case ldvalue.StringType:
		return v.StringValue() != ""
	case ldvalue.ArrayType, ldvalue.ObjectType:
		return v.Count() > 0
	default:
		return false
	}
}

// HasKey reports whether v is an object with the given property, even if its value is null.
func HasKey(v ldvalue.Value, key string) bool {
	if v.Type() != ldvalue.ObjectType {
		return false
	}
	_, ok := v.TryGetByKey(key)
	return ok
}

// PathSegment renders an ID taken from a JSON response for use in a URL path.
func PathSegment(id ldvalue.Value) string {
	if id.Type() == ldvalue.StringType {
		return id.StringValue()
	}
	return id.JSONString()
}
