// Package expect compares decoded JSON responses against declarative
// patterns. Patterns mix literals with matchers so a test pins only the
// fields it cares about; extra keys in the actual object are ignored.
package expect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"pengine-e2e/toolkit"
)

// MatchError is an assertion mismatch. The runner distinguishes these from
// transport and precondition failures when classifying a case result.
type MatchError struct {
	Path   string
	Reason string
}

func (e *MatchError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("mismatch at %s: %s", e.Path, e.Reason)
}

func fail(path, format string, args ...any) error {
	return &MatchError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Matcher is a single-value pattern.
type Matcher interface {
	match(path string, actual any) error
	String() string
}

// Match checks actual against expected. Expected may be a Matcher, a map of
// field patterns, a slice, or a literal.
func Match(expected, actual any) error {
	return matchValue("$", expected, actual)
}

// Body decodes a response body and matches it against expected.
func Body(resp *toolkit.Response, expected any) error {
	var actual any
	if err := json.Unmarshal(resp.Body, &actual); err != nil {
		return &MatchError{Path: "$", Reason: fmt.Sprintf("body is not valid JSON: %v (body=%s)", err, compact(string(resp.Body)))}
	}
	return Match(expected, actual)
}

// Status asserts the response status code. On mismatch the failure carries
// whatever error hint the body holds, so a wrong status is debuggable
// without re-running.
func Status(resp *toolkit.Response, want int) error {
	if resp.Status == want {
		return nil
	}
	reason := fmt.Sprintf("expected status %d, got %d", want, resp.Status)
	if hint := errorHint(resp.Body); hint != "" {
		reason += " (response hint: " + hint + ")"
	}
	return &MatchError{Path: "status", Reason: reason}
}

func matchValue(path string, expected, actual any) error {
	switch exp := expected.(type) {
	case Matcher:
		return exp.match(path, actual)
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			return fail(path, "expected object, got %s", compactJSON(actual))
		}
		for k, v := range exp {
			a, present := act[k]
			if !present {
				return fail(path+"."+k, "key missing (expected %s)", describe(v))
			}
			if err := matchValue(path+"."+k, v, a); err != nil {
				return err
			}
		}
		return nil
	case []any:
		// A literal slice matches exactly: same length, same order.
		act, ok := actual.([]any)
		if !ok {
			return fail(path, "expected array, got %s", compactJSON(actual))
		}
		if len(act) != len(exp) {
			return fail(path, "expected array of length %d, got %d", len(exp), len(act))
		}
		for i := range exp {
			if err := matchValue(fmt.Sprintf("%s[%d]", path, i), exp[i], act[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		if equalLoose(expected, actual) {
			return nil
		}
		if diff := cmp.Diff(normalize(expected), actual); diff != "" {
			return fail(path, "value differs (-expected +actual):\n%s", diff)
		}
		return nil
	}
}

// equalLoose compares a Go literal against a decoded JSON value, bridging
// the int-vs-float64 gap the decoder introduces.
func equalLoose(expected, actual any) bool {
	if expected == nil {
		return actual == nil
	}
	if en, ok := toFloat(expected); ok {
		an, aok := toFloat(actual)
		return aok && en == an
	}
	return expected == actual
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// normalize converts Go literals into their decoded-JSON shape so cmp diffs
// compare like against like.
func normalize(v any) any {
	if n, ok := toFloat(v); ok {
		return n
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func describe(v any) string {
	if m, ok := v.(Matcher); ok {
		return m.String()
	}
	return compactJSON(v)
}

func compactJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return compact(string(raw))
}

func compact(s string) string {
	const max = 300
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// errorHint pulls the most useful field out of an error body for status
// mismatch reports.
func errorHint(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return compact(string(body))
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return compactJSON(v)
	}
	for _, key := range []string{"message", "error", "detail", "reason"} {
		if val, ok := obj[key]; ok {
			return compactJSON(val)
		}
	}
	return compactJSON(obj)
}

// exactDiff compares two decoded-JSON values structurally, returning a cmp
// rendering of the difference or "" when equal.
func exactDiff(expected, actual any) string {
	return cmp.Diff(expected, actual)
}

var isoTimestampRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)
