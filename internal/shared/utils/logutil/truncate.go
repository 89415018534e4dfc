package logutil

import "unicode/utf8"

// TruncateForLog keeps the first maxLen runes of s and marks the cut with
// "...". Provider bodies can carry multi-byte narrations, so the cut never
// splits a rune.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
