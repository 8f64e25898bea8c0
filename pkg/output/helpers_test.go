package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "short string unchanged", input: "hello", maxLen: 10, expected: "hello"},
		{name: "exact length unchanged", input: "hello", maxLen: 5, expected: "hello"},
		{name: "long string cut", input: "hello world", maxLen: 8, expected: "hello..."},
		{name: "tiny limit without ellipsis", input: "hello", maxLen: 2, expected: "he"},
		{name: "zero limit", input: "hello", maxLen: 0, expected: ""},
		{name: "newlines escaped", input: "a\nb", maxLen: 10, expected: `a\nb`},
		{name: "runes not bytes", input: "日本語テキスト", maxLen: 5, expected: "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Abbreviate(tt.input, tt.maxLen))
		})
	}
}
