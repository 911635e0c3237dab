package expect

import (
	"fmt"
	"strings"
)

// ObjectContaining passes when every listed key is present with a matching
// value; keys not listed are ignored.
func ObjectContaining(fields map[string]any) Matcher {
	return objectContaining{fields: fields}
}

type objectContaining struct {
	fields map[string]any
}

func (m objectContaining) match(path string, actual any) error {
	return matchValue(path, m.fields, actual)
}

func (m objectContaining) String() string {
	return fmt.Sprintf("object containing %d keys", len(m.fields))
}

// ArrayContaining passes when every listed element appears somewhere in the
// actual array, regardless of order or extra elements. Chain WithLen to
// additionally pin the total element count, catching validators that drop or
// duplicate messages.
func ArrayContaining(elements ...any) *ArrayMatcher {
	return &ArrayMatcher{elements: elements, wantLen: -1}
}

// ArrayMatcher is the unordered-containment matcher, optionally length-pinned.
type ArrayMatcher struct {
	elements []any
	wantLen  int
}

// WithLen pins the exact total length of the actual array.
func (m *ArrayMatcher) WithLen(n int) *ArrayMatcher {
	return &ArrayMatcher{elements: m.elements, wantLen: n}
}

func (m *ArrayMatcher) match(path string, actual any) error {
	act, ok := actual.([]any)
	if !ok {
		return fail(path, "expected array, got %s", compactJSON(actual))
	}
	if m.wantLen >= 0 && len(act) != m.wantLen {
		return fail(path, "expected array of length %d, got %d: %s", m.wantLen, len(act), compactJSON(act))
	}
	for _, want := range m.elements {
		found := false
		for i, got := range act {
			if matchValue(fmt.Sprintf("%s[%d]", path, i), want, got) == nil {
				found = true
				break
			}
		}
		if !found {
			return fail(path, "no element matches %s in %s", describe(want), compactJSON(act))
		}
	}
	return nil
}

func (m *ArrayMatcher) String() string {
	if m.wantLen >= 0 {
		return fmt.Sprintf("array containing %d elements with total length %d", len(m.elements), m.wantLen)
	}
	return fmt.Sprintf("array containing %d elements", len(m.elements))
}

// Len passes when the actual array or string has exactly n elements.
func Len(n int) Matcher { return lenMatcher{n: n} }

type lenMatcher struct{ n int }

func (m lenMatcher) match(path string, actual any) error {
	switch a := actual.(type) {
	case []any:
		if len(a) != m.n {
			return fail(path, "expected length %d, got %d", m.n, len(a))
		}
		return nil
	case string:
		if len(a) != m.n {
			return fail(path, "expected length %d, got %d", m.n, len(a))
		}
		return nil
	default:
		return fail(path, "expected array or string for length check, got %s", compactJSON(actual))
	}
}

func (m lenMatcher) String() string { return fmt.Sprintf("length %d", m.n) }

// StringContaining passes when the actual string contains the substring.
func StringContaining(sub string) Matcher { return stringContaining{sub: sub} }

type stringContaining struct{ sub string }

func (m stringContaining) match(path string, actual any) error {
	s, ok := actual.(string)
	if !ok {
		return fail(path, "expected string, got %s", compactJSON(actual))
	}
	if !strings.Contains(s, m.sub) {
		return fail(path, "expected string containing %q, got %q", m.sub, s)
	}
	return nil
}

func (m stringContaining) String() string { return fmt.Sprintf("string containing %q", m.sub) }

// Type-tag matchers for fields whose exact value is non-deterministic.

// AnyString passes for any JSON string.
func AnyString() Matcher { return anyOf{kind: "string"} }

// AnyBool passes for any JSON boolean.
func AnyBool() Matcher { return anyOf{kind: "bool"} }

// AnyNumber passes for any JSON number.
func AnyNumber() Matcher { return anyOf{kind: "number"} }

// AnyArray passes for any JSON array.
func AnyArray() Matcher { return anyOf{kind: "array"} }

// AnyObject passes for any JSON object.
func AnyObject() Matcher { return anyOf{kind: "object"} }

type anyOf struct{ kind string }

func (m anyOf) match(path string, actual any) error {
	ok := false
	switch m.kind {
	case "string":
		_, ok = actual.(string)
	case "bool":
		_, ok = actual.(bool)
	case "number":
		_, ok = actual.(float64)
	case "array":
		_, ok = actual.([]any)
	case "object":
		_, ok = actual.(map[string]any)
	}
	if !ok {
		return fail(path, "expected any %s, got %s", m.kind, compactJSON(actual))
	}
	return nil
}

func (m anyOf) String() string { return "any " + m.kind }

// NonEmptyString passes for any string with at least one character.
func NonEmptyString() Matcher { return nonEmptyString{} }

type nonEmptyString struct{}

func (nonEmptyString) match(path string, actual any) error {
	s, ok := actual.(string)
	if !ok {
		return fail(path, "expected string, got %s", compactJSON(actual))
	}
	if s == "" {
		return fail(path, "expected non-empty string")
	}
	return nil
}

func (nonEmptyString) String() string { return "non-empty string" }

// ISOTimestamp passes for strings in the backend's millisecond-precision
// ISO-8601 UTC format, e.g. 2025-01-02T03:04:05.678Z.
func ISOTimestamp() Matcher { return isoTimestamp{} }

type isoTimestamp struct{}

func (isoTimestamp) match(path string, actual any) error {
	s, ok := actual.(string)
	if !ok {
		return fail(path, "expected timestamp string, got %s", compactJSON(actual))
	}
	if !isoTimestampRE.MatchString(s) {
		return fail(path, "expected ISO-8601 timestamp, got %q", s)
	}
	return nil
}

func (isoTimestamp) String() string { return "ISO-8601 timestamp" }

// Equals pins a value exactly, including nested structure.
func Equals(v any) Matcher { return equalsMatcher{want: v} }

type equalsMatcher struct{ want any }

func (m equalsMatcher) match(path string, actual any) error {
	if diff := exactDiff(normalize(m.want), actual); diff != "" {
		return fail(path, "value differs (-expected +actual):\n%s", diff)
	}
	return nil
}

func (m equalsMatcher) String() string { return "equals " + compactJSON(m.want) }
