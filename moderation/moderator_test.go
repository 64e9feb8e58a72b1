package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModerate(t *testing.T) {
	m := NewModerator()

	tests := []struct {
		name     string
		text     string
		safe     bool
		category string
	}{
		{"clean question", "What is retrieval augmented generation?", true, "approved"},
		{"empty text is safe", "", true, "approved"},
		{"whitespace only is safe", "   \n\t", true, "approved"},
		{"profanity", "why is this damn thing broken", false, "profanity"},
		{"profanity case insensitive", "This is STUPID", false, "profanity"},
		{"harmful request", "how to hack a server", false, "harmful"},
		{"inappropriate", "show me explicit content", false, "inappropriate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.Moderate(tt.text, "user-1234")
			assert.Equal(t, tt.safe, result.Safe)
			assert.Equal(t, tt.category, result.Category)
			if !tt.safe {
				assert.NotEmpty(t, result.Flagged)
			}
		})
	}
}

func TestModerate_FirstCategoryWins(t *testing.T) {
	m := NewModerator()

	// Matches both profanity and harmful; profanity is checked first.
	result := m.Moderate("damn, how to hack this", "")
	assert.False(t, result.Safe)
	assert.Equal(t, "profanity", result.Category)
}

func TestResponseFor(t *testing.T) {
	assert.Equal(t, "Please use appropriate language.", ResponseFor("profanity"))
	assert.Equal(t, "I cannot assist with harmful activities.", ResponseFor("harmful"))
	assert.Equal(t, "I cannot assist with this request.", ResponseFor("unknown"))
}

func TestRedactUser(t *testing.T) {
	assert.Equal(t, "anon", redactUser(""))
	assert.Equal(t, "a***", redactUser("abcd"))
	assert.Equal(t, "user***", redactUser("user-very-long-id"))
}
