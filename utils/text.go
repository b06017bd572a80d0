package utils

import (
	"strings"
)

// =============================================================================
// Model Output Helpers
// =============================================================================

// BraceSpan returns the widest substring that starts at the first '{' and
// ends at the last '}' in text. The match is greedy: any prose between a
// closing brace and a later '}' is included.
func BraceSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(text, '}')
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}

// =============================================================================
// Value Helpers
// =============================================================================

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CompactStrings trims entries, drops blanks and keeps at most limit items.
// A negative limit keeps everything. The result is never nil.
func CompactStrings(items []string, limit int) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if limit >= 0 && len(out) >= limit {
			break
		}
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
