package karma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		mentions []string
		expected map[string]int
	}{
		{
			name:     "four plus signs give plus two",
			content:  "<@123> ++++",
			mentions: []string{"123"},
			expected: map[string]int{"123": 2},
		},
		{
			name:     "four minus signs give minus two",
			content:  "<@123> ----",
			mentions: []string{"123"},
			expected: map[string]int{"123": -2},
		},
		{
			name:     "nickname mention form",
			content:  "<@!123> ++",
			mentions: []string{"123"},
			expected: map[string]int{"123": 1},
		},
		{
			name:     "lone minus is dropped",
			content:  "<@123> -",
			mentions: []string{"123"},
			expected: map[string]int{},
		},
		{
			name:     "lone plus is dropped",
			content:  "<@123> +",
			mentions: []string{"123"},
			expected: map[string]int{},
		},
		{
			name:     "odd run floors",
			content:  "<@123> +++++",
			mentions: []string{"123"},
			expected: map[string]int{"123": 2},
		},
		{
			name:     "multiple runs for the same user sum",
			content:  "<@123> ++ and also <@123> ++++",
			mentions: []string{"123"},
			expected: map[string]int{"123": 3},
		},
		{
			name:     "mixed users",
			content:  "<@123> ++ <@456> --",
			mentions: []string{"123", "456"},
			expected: map[string]int{"123": 1, "456": -1},
		},
		{
			name:     "mention without run is absent",
			content:  "hey <@123> how are you",
			mentions: []string{"123"},
			expected: map[string]int{},
		},
		{
			name:     "no whitespace between mention and run",
			content:  "<@123>++",
			mentions: []string{"123"},
			expected: map[string]int{},
		},
		{
			name:     "unmentioned user is ignored",
			content:  "<@123> ++",
			mentions: []string{"456"},
			expected: map[string]int{},
		},
		{
			name:     "cancelling runs leave a zero entry",
			content:  "<@123> ++ <@123> --",
			mentions: []string{"123"},
			expected: map[string]int{"123": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := Extract(tt.content, tt.mentions)
			assert.Equal(t, tt.expected, deltas)
		})
	}
}
