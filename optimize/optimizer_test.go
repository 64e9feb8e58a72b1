package optimize

import (
	"testing"

	"github.com/poiesic/quaero/core"
	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "drops stop words and short tokens",
			query: "What is the meaning of RAG in AI systems?",
			want:  []string{"what", "meaning", "rag", "systems"},
		},
		{
			name:  "deduplicates",
			query: "python python python",
			want:  []string{"python"},
		},
		{
			name:  "empty query",
			query: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractKeywords(tt.query))
		})
	}
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		query string
		want  core.Intent
	}{
		{"What is machine learning?", core.IntentDefinition},
		{"define recursion", core.IntentDefinition},
		{"How to deploy a service", core.IntentHowTo},
		{"python vs go", core.IntentComparison},
		{"show me an example of generics", core.IntentExample},
		{"my build failed with an error", core.IntentTroubleshoot},
		{"tell me about turtles", core.IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, detectIntent(tt.query))
		})
	}
}

func TestDetectIntent_OrderedTieBreak(t *testing.T) {
	// Matches both definition ("what is") and howto ("how to");
	// definition is checked first.
	assert.Equal(t, core.IntentDefinition, detectIntent("what is the how to guide"))
}

func TestExpandSynonyms(t *testing.T) {
	expanded := expandSynonyms("train an ml model")
	assert.Contains(t, expanded, "ml (machine learning OR artificial intelligence OR AI)")
	assert.Contains(t, expanded, "model (algorithm OR system OR framework)")

	// Terms absent from the query are not expanded.
	assert.Equal(t, "hello world", expandSynonyms("hello world"))
}

func TestOptimize(t *testing.T) {
	o := NewOptimizer()

	qc := o.Optimize("What is machine learning?")
	assert.Equal(t, core.IntentDefinition, qc.Intent)
	assert.Contains(t, qc.Keywords, "machine")
	assert.Contains(t, qc.Keywords, "learning")
	assert.Equal(t, "What is machine learning?", qc.Original)

	// confidence = min(0.9, 0.5 + 0.1*keywords)
	assert.InDelta(t, 0.5+0.1*float64(len(qc.Keywords)), qc.Confidence, 1e-9)
	assert.LessOrEqual(t, qc.Confidence, 0.9)
}

func TestOptimize_ConfidenceCap(t *testing.T) {
	o := NewOptimizer()
	qc := o.Optimize("alpha bravo charlie delta echo foxtrot golf hotel india juliet")
	assert.Equal(t, 0.9, qc.Confidence)
}
