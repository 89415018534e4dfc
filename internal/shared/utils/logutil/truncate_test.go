package logutil

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "empty string", input: "", maxLen: 10, expected: ""},
		{name: "empty string with zero maxLen", input: "", maxLen: 0, expected: "..."},
		{name: "shorter than maxLen", input: `{"status":"ACCEPTED"}`, maxLen: 64, expected: `{"status":"ACCEPTED"}`},
		{name: "equal to maxLen", input: "hello", maxLen: 5, expected: "hello"},
		{name: "longer than maxLen", input: `{"errorCode":1}`, maxLen: 5, expected: `{"err...`},
		{name: "negative maxLen", input: "hello", maxLen: -1, expected: "..."},
		{name: "maxLen 1", input: "hello", maxLen: 1, expected: "h..."},
		{name: "multi-byte runes kept whole", input: "Paiement reçu à Kampala", maxLen: 11, expected: "Paiement re..."},
		{name: "cut right after a multi-byte rune", input: "reçu ok", maxLen: 3, expected: "reç..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateForLog(tt.input, tt.maxLen)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
