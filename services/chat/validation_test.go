package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"a@b.com", "a@b.com", true},
		{"  jane@x.com ", "jane@x.com", true},
		{"sure, it's jane.doe+work@mail.example.org!", "jane.doe+work@mail.example.org", true},
		{"not-an-email", "", false},
		{"jane@", "", false},
		{"jane @x.com", "", false},
		{"a@b.c", "a@b.c", true},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ExtractEmail(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := map[string]string{
		"Jane":               "Jane",
		"  Jane Doe  ":       "Jane Doe",
		"My name is Jane":    "Jane",
		"i'm Sam!":           "Sam",
		"Call me Ishmael.":   "Ishmael",
		"this is Dr. Okafor": "Dr. Okafor",
		"I am":               "I am",
		"It's":               "It's",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, ExtractName(input))
		})
	}
}

func TestMatchOption(t *testing.T) {
	opts := []string{"10:00 AM", "10:30 AM"}
	got, ok := matchOption(" 10:30 am", opts)
	assert.True(t, ok)
	assert.Equal(t, "10:30 AM", got)

	_, ok = matchOption("10:45 AM", opts)
	assert.False(t, ok)
}
