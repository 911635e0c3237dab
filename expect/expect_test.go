package expect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pengine-e2e/expect"
	"pengine-e2e/toolkit"
)

func TestMatchObjectSubset(t *testing.T) {
	actual := map[string]any{
		"id":    "abc",
		"email": "a@b.co",
		"extra": true,
	}

	require.NoError(t, expect.Match(map[string]any{"id": "abc"}, actual))
	require.NoError(t, expect.Match(map[string]any{"email": "a@b.co", "extra": true}, actual))

	err := expect.Match(map[string]any{"id": "xyz"}, actual)
	require.Error(t, err)
	var mErr *expect.MatchError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, "$.id", mErr.Path)
}

func TestMatchMissingKey(t *testing.T) {
	err := expect.Match(map[string]any{"name": "x"}, map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key missing")
}

func TestMatchLiteralArrayIsExactAndOrdered(t *testing.T) {
	actual := []any{"a", "b"}

	require.NoError(t, expect.Match([]any{"a", "b"}, actual))
	require.Error(t, expect.Match([]any{"b", "a"}, actual))
	require.Error(t, expect.Match([]any{"a"}, actual))
}

func TestMatchNumberBridgesIntAndFloat(t *testing.T) {
	// Decoded JSON numbers are float64; Go literals are usually int.
	require.NoError(t, expect.Match(map[string]any{"statusCode": 400}, map[string]any{"statusCode": float64(400)}))
}

func TestArrayContaining(t *testing.T) {
	actual := []any{"one", "two", "three"}

	require.NoError(t, expect.Match(expect.ArrayContaining("two"), actual))
	require.NoError(t, expect.Match(expect.ArrayContaining("three", "one"), actual))
	require.Error(t, expect.Match(expect.ArrayContaining("four"), actual))
}

func TestArrayContainingWithLen(t *testing.T) {
	actual := []any{"one", "two"}

	require.NoError(t, expect.Match(expect.ArrayContaining("one", "two").WithLen(2), actual))

	err := expect.Match(expect.ArrayContaining("one").WithLen(3), actual)
	require.Error(t, err)
}

func TestObjectContaining(t *testing.T) {
	actual := map[string]any{
		"message":    []any{"email must be an email"},
		"error":      "Bad Request",
		"statusCode": float64(400),
	}

	require.NoError(t, expect.Match(expect.ObjectContaining(map[string]any{
		"message":    expect.ArrayContaining("email must be an email"),
		"error":      "Bad Request",
		"statusCode": 400,
	}), actual))
}

func TestAnyMatchers(t *testing.T) {
	require.NoError(t, expect.Match(expect.AnyString(), "x"))
	require.Error(t, expect.Match(expect.AnyString(), 1.0))

	require.NoError(t, expect.Match(expect.AnyBool(), true))
	require.Error(t, expect.Match(expect.AnyBool(), "true"))

	require.NoError(t, expect.Match(expect.AnyNumber(), 3.5))
	require.NoError(t, expect.Match(expect.AnyArray(), []any{}))
	require.NoError(t, expect.Match(expect.AnyObject(), map[string]any{}))
}

func TestNonEmptyString(t *testing.T) {
	require.NoError(t, expect.Match(expect.NonEmptyString(), "x"))
	require.Error(t, expect.Match(expect.NonEmptyString(), ""))
	require.Error(t, expect.Match(expect.NonEmptyString(), nil))
}

func TestStringContaining(t *testing.T) {
	require.NoError(t, expect.Match(expect.StringContaining("not found"), "Admin not found"))
	require.Error(t, expect.Match(expect.StringContaining("conflict"), "Admin not found"))
}

func TestISOTimestamp(t *testing.T) {
	require.NoError(t, expect.Match(expect.ISOTimestamp(), "2026-01-02T03:04:05.678Z"))
	require.Error(t, expect.Match(expect.ISOTimestamp(), "2026-01-02T03:04:05Z"))
	require.Error(t, expect.Match(expect.ISOTimestamp(), "yesterday"))
}

func TestLen(t *testing.T) {
	require.NoError(t, expect.Match(expect.Len(2), []any{"a", "b"}))
	require.Error(t, expect.Match(expect.Len(1), []any{"a", "b"}))
}

func TestEqualsIsExact(t *testing.T) {
	require.NoError(t, expect.Match(expect.Equals(map[string]any{"a": 1}), map[string]any{"a": float64(1)}))
	// Unlike the plain map pattern, Equals refuses extra keys.
	require.Error(t, expect.Match(expect.Equals(map[string]any{"a": 1}), map[string]any{"a": float64(1), "b": true}))
}

func TestStatus(t *testing.T) {
	resp := &toolkit.Response{Status: 400, Body: []byte(`{"message":"Super admin already exists","error":"Bad Request","statusCode":400}`)}

	require.NoError(t, expect.Status(resp, 400))

	err := expect.Status(resp, 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected status 200, got 400")
	assert.Contains(t, err.Error(), "Super admin already exists")
}

func TestBody(t *testing.T) {
	resp := &toolkit.Response{Status: 200, Body: []byte(`{"id":"a1","isActive":true}`)}

	require.NoError(t, expect.Body(resp, expect.ObjectContaining(map[string]any{
		"id":       expect.NonEmptyString(),
		"isActive": true,
	})))

	bad := &toolkit.Response{Status: 200, Body: []byte(`not json`)}
	require.Error(t, expect.Body(bad, map[string]any{}))
}
