package optimize

import (
	"testing"

	"github.com/poiesic/quaero/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRerank(t *testing.T) {
	r := NewReranker(DefaultRerankConfig())

	qc := QueryContext{
		Keywords: []string{"vector", "store"},
		Intent:   core.IntentDefinition,
	}

	candidates := []core.SearchCandidate{
		{Content: "unrelated text about gardening", Score: 0.5},
		{Content: "a vector store is a database for embeddings", Score: 0.4},
	}

	reranked := r.Rerank(candidates, qc)
	require.Len(t, reranked, 2)

	// 0.4 + 2*0.1 keywords + 0.15 definition marker = 0.75
	assert.Equal(t, "a vector store is a database for embeddings", reranked[0].Content)
	assert.InDelta(t, 0.75, reranked[0].Score, 1e-9)
	assert.InDelta(t, 0.5, reranked[1].Score, 1e-9)

	// Input slice is not reordered in place.
	assert.Equal(t, "unrelated text about gardening", candidates[0].Content)
	assert.InDelta(t, 0.5, candidates[0].Score, 1e-9)
}

func TestRerank_HowToMarkers(t *testing.T) {
	r := NewReranker(DefaultRerankConfig())

	qc := QueryContext{Intent: core.IntentHowTo}
	reranked := r.Rerank([]core.SearchCandidate{
		{Content: "the first step of the process", Score: 0.2},
	}, qc)

	assert.InDelta(t, 0.35, reranked[0].Score, 1e-9)
}

func TestRerank_ClampsToOne(t *testing.T) {
	r := NewReranker(DefaultRerankConfig())

	qc := QueryContext{Keywords: []string{"alpha", "beta", "gamma"}}
	reranked := r.Rerank([]core.SearchCandidate{
		{Content: "alpha beta gamma", Score: 0.95},
	}, qc)

	assert.Equal(t, 1.0, reranked[0].Score)
}

func TestRerank_StableForTies(t *testing.T) {
	r := NewReranker(DefaultRerankConfig())

	candidates := []core.SearchCandidate{
		{Content: "first", Score: 0.5},
		{Content: "second", Score: 0.5},
		{Content: "third", Score: 0.5},
	}

	reranked := r.Rerank(candidates, QueryContext{})
	assert.Equal(t, "first", reranked[0].Content)
	assert.Equal(t, "second", reranked[1].Content)
	assert.Equal(t, "third", reranked[2].Content)
}

func TestRerank_Empty(t *testing.T) {
	r := NewReranker(DefaultRerankConfig())
	assert.Empty(t, r.Rerank(nil, QueryContext{}))
}
