package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "plain sentence",
			text:     "The quick brown fox",
			expected: []string{"the", "quick", "brown", "fox"},
		},
		{
			name:     "urls and mentions removed",
			text:     "@jack look at https://t.co/abc and www.example.com now",
			expected: []string{"look", "and", "now"},
		},
		{
			name:     "hashtags become words",
			text:     "Loving #GoLang today",
			expected: []string{"loving", "golang", "today"},
		},
		{
			name:     "punctuation trimmed",
			text:     `"Really?" she said, "yes!"`,
			expected: []string{"really", "she", "said", "yes"},
		},
		{
			name:     "short and non alphabetic words dropped",
			text:     "it is 2024 a go1 abc1 1abc",
			expected: []string{"go1", "abc1"},
		},
		{
			name:     "non ascii words dropped",
			text:     "café naïve tea",
			expected: []string{"tea"},
		},
		{
			name:     "duplicates kept in order",
			text:     "spam eggs spam",
			expected: []string{"spam", "eggs", "spam"},
		},
		{
			name:     "whitespace collapsed",
			text:     "one\n\ttwo   three",
			expected: []string{"one", "two", "three"},
		},
		{
			name:     "empty",
			text:     "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Words(tt.text))
		})
	}
}

func TestWords_Deterministic(t *testing.T) {
	text := "Deterministic output for #same input @user https://x.y"
	assert.Equal(t, Words(text), Words(text))
}

func TestNormalizeHashtag(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		expected string
	}{
		{name: "strips hash", tag: "#Foo", expected: "foo"},
		{name: "already plain", tag: "foo", expected: "foo"},
		{name: "case variants collapse", tag: "#FOO", expected: "foo"},
		{name: "full width hash", tag: "＃Tag", expected: "tag"},
		{name: "composes decomposed accents", tag: "#Cafe\u0301", expected: "caf\u00e9"},
		{name: "case folds sharp s", tag: "#Straße", expected: "strasse"},
		{name: "empty", tag: "#", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHashtag(tt.tag))
		})
	}
}
