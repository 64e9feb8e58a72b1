package mock

import (
	"context"
	"strings"

	"github.com/poiesic/quaero/ai"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default deterministic behavior.
	SummarizeFunc func(ctx context.Context, question string, snippets []string) (string, error)

	callCount int
}

var _ ai.Summarizer = (*MockSummarizer)(nil)

// NewMockSummarizer creates a mock summarizer with default deterministic behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize joins the snippets deterministically unless a custom
// function is injected.
func (m *MockSummarizer) Summarize(ctx context.Context, question string, snippets []string) (string, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, question, snippets)
	}

	if len(snippets) == 0 {
		return "No relevant information found.", nil
	}
	return "Summary: " + strings.Join(snippets, " "), nil
}

// CallCount returns how many times Summarize was invoked.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}
