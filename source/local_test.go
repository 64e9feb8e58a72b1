package source

import (
	"context"
	"testing"

	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocal(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		adapter, err := NewLocal(nil)
		assert.ErrorIs(t, err, ErrDocStoreRequired)
		assert.Nil(t, adapter)
	})

	t.Run("valid", func(t *testing.T) {
		adapter, err := NewLocal(docstore.NewStore())
		require.NoError(t, err)
		assert.Equal(t, core.SourceLocalDocument, adapter.Tag())
	})
}

func TestLocalSearch(t *testing.T) {
	store := docstore.NewStore()
	_, err := store.AddText("go.txt", "Go is a compiled language with goroutines.")
	require.NoError(t, err)
	_, err = store.AddText("cooking.txt", "Simmer the sauce until it thickens.")
	require.NoError(t, err)

	adapter, err := NewLocal(store)
	require.NoError(t, err)

	t.Run("scores by token overlap", func(t *testing.T) {
		candidates, err := adapter.Search(context.Background(), "is Go a compiled language", 5)
		require.NoError(t, err)
		require.NotEmpty(t, candidates)

		best := candidates[0]
		assert.Contains(t, best.Content, "compiled language")
		assert.InDelta(t, 1.0, best.Score, 0.001)
		assert.Equal(t, core.SourceLocalDocument, best.Source)
		assert.Equal(t, "go.txt", best.Metadata["filename"])
		assert.NotEmpty(t, best.Metadata["document_id"])
	})

	t.Run("floor filters weak overlap", func(t *testing.T) {
		candidates, err := adapter.Search(context.Background(), "quantum entanglement spectroscopy", 5)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("topK truncates", func(t *testing.T) {
		candidates, err := adapter.Search(context.Background(), "the sauce language", 1)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(candidates), 1)
	})

	t.Run("empty query", func(t *testing.T) {
		candidates, err := adapter.Search(context.Background(), "   ", 5)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := adapter.Search(ctx, "compiled language", 5)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOverlapScore(t *testing.T) {
	words := wordSet("what is a goroutine")
	assert.InDelta(t, 0.25, overlapScore(words, "goroutine scheduling internals"), 0.001)
	assert.InDelta(t, 0.0, overlapScore(words, "unrelated content"), 0.001)
}

func TestWordSet(t *testing.T) {
	words := wordSet("Hello, World! (really)")
	assert.True(t, words["hello"])
	assert.True(t, words["world"])
	assert.True(t, words["really"])
	assert.False(t, words["hello,"])
}
