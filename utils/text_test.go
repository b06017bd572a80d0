package utils

import (
	"reflect"
	"testing"
)

func TestBraceSpan(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{
			name:     "Pure object",
			text:     `{"label":"REAL"}`,
			expected: `{"label":"REAL"}`,
			found:    true,
		},
		{
			name:     "Object inside prose",
			text:     `Sure, here it is: {"label":"FAKE"} Thanks!`,
			expected: `{"label":"FAKE"}`,
			found:    true,
		},
		{
			name:     "Nested braces across lines",
			text:     "Answer:\n{\n  \"a\": {\"b\": 1}\n}\nDone",
			expected: "{\n  \"a\": {\"b\": 1}\n}",
			found:    true,
		},
		{
			name:     "Greedy span swallows trailing prose up to last brace",
			text:     `{"label":"REAL"} note: {see above}`,
			expected: `{"label":"REAL"} note: {see above}`,
			found:    true,
		},
		{
			name:  "No braces",
			text:  "I cannot answer",
			found: false,
		},
		{
			name:  "Only opening brace",
			text:  "value { never closed",
			found: false,
		},
		{
			name:  "Closing brace before opening brace",
			text:  "} backwards {",
			found: false,
		},
		{
			name:  "Empty text",
			text:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, found := BraceSpan(tt.text)
			if found != tt.found {
				t.Fatalf("BraceSpan() found = %v, expected %v", found, tt.found)
			}
			if span != tt.expected {
				t.Errorf("BraceSpan() = %q, expected %q", span, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{"Inside range", 0.42, 0.42},
		{"Lower bound", 0, 0},
		{"Upper bound", 1, 1},
		{"Below range", -0.5, 0},
		{"Above range", 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, 0, 1); got != tt.expected {
				t.Errorf("Clamp(%v) = %v, expected %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestCompactStrings(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		max      int
		expected []string
	}{
		{"Nil input", nil, 3, []string{}},
		{"Under limit", []string{"a", "b"}, 3, []string{"a", "b"}},
		{"Truncated", []string{"a", "b", "c", "d"}, 3, []string{"a", "b", "c"}},
		{"Blanks skipped before counting", []string{"", " ", "a", "b", "c", "d"}, 3, []string{"a", "b", "c"}},
		{"Trimmed", []string{"  http://a  "}, 3, []string{"http://a"}},
		{"Unlimited", []string{"a", "b", "c", "d"}, -1, []string{"a", "b", "c", "d"}},
		{"Zero limit", []string{"a"}, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompactStrings(tt.items, tt.max)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("CompactStrings() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
