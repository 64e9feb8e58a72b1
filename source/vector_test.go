package source_test

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/source"
	"github.com/poiesic/quaero/source/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

func TestNewVector(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		adapter, err := source.NewVector(nil)
		assert.ErrorIs(t, err, source.ErrVectorStoreRequired)
		assert.Nil(t, adapter)
	})

	t.Run("valid", func(t *testing.T) {
		adapter, err := source.NewVector(&mock.MockVectorStore{})
		require.NoError(t, err)
		assert.Equal(t, core.SourceVectorStore, adapter.Tag())
	})
}

func TestVectorSearch(t *testing.T) {
	t.Run("passes scores through", func(t *testing.T) {
		store := &mock.MockVectorStore{
			SimilaritySearchFunc: func(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]schema.Document, error) {
				assert.Equal(t, 3, numDocuments)
				return []schema.Document{
					{PageContent: "embeddings map text to vectors", Score: 0.82, Metadata: map[string]any{"chunk": 4}},
					{PageContent: "cosine similarity compares them", Score: 0.41},
				}, nil
			},
		}
		adapter, err := source.NewVector(store)
		require.NoError(t, err)

		candidates, err := adapter.Search(context.Background(), "what are embeddings", 3)
		require.NoError(t, err)
		require.Len(t, candidates, 2)

		assert.InDelta(t, 0.82, candidates[0].Score, 0.001)
		assert.Equal(t, core.SourceVectorStore, candidates[0].Source)
		assert.Equal(t, "4", candidates[0].Metadata["chunk"])
		assert.InDelta(t, 0.41, candidates[1].Score, 0.001)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		wantErr := errors.New("store down")
		store := &mock.MockVectorStore{
			SimilaritySearchFunc: func(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]schema.Document, error) {
				return nil, wantErr
			},
		}
		adapter, err := source.NewVector(store)
		require.NoError(t, err)

		_, err = adapter.Search(context.Background(), "anything", 3)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("empty result", func(t *testing.T) {
		adapter, err := source.NewVector(&mock.MockVectorStore{})
		require.NoError(t, err)

		candidates, err := adapter.Search(context.Background(), "anything", 3)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})
}
