package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Orange County", "orange county"},
		{"  spaced   out  ", "spaced out"},
		{"natty tourney", "nationals tournament"},
		{"nats 2024", "nationals 2024"},
		{"best team in ohio", "best school in ohio"},
		{"teams from texas", "school from texas"},
		{"mit invite", "mit invitational"},
		{"socal regs", "socal regionals"},
		{"ohio state comp", "ohio states tournament"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalize_SynonymsOnlyMatchWholeWords(t *testing.T) {
	// "statement" contains "state" but must not be rewritten.
	assert.Equal(t, "statement", Normalize("Statement"))
	assert.Equal(t, "teamwork", Normalize("teamwork"))
}
