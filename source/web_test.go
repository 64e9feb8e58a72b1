package source_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	aimock "github.com/poiesic/quaero/ai/mock"
	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/source"
	"github.com/poiesic/quaero/source/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeb(t *testing.T) {
	t.Run("nil searcher", func(t *testing.T) {
		adapter, err := source.NewWeb(nil)
		assert.ErrorIs(t, err, source.ErrSnippetSearcherRequired)
		assert.Nil(t, adapter)
	})

	t.Run("valid", func(t *testing.T) {
		adapter, err := source.NewWeb(&mock.MockSearcher{})
		require.NoError(t, err)
		assert.Equal(t, core.SourceWebSearch, adapter.Tag())
	})
}

func TestWebSearch(t *testing.T) {
	snippets := []source.Snippet{
		{Title: "Goroutines", Content: "A goroutine is a lightweight thread managed by the Go runtime.", URL: "https://example.org/goroutines"},
		{Content: "Goroutines multiplex onto OS threads."},
	}

	t.Run("summarizes snippets", func(t *testing.T) {
		searcher := &mock.MockSearcher{
			SnippetsFunc: func(ctx context.Context, query string, max int) ([]source.Snippet, error) {
				return snippets, nil
			},
		}
		summarizer := aimock.NewMockSummarizer()
		summarizer.SummarizeFunc = func(ctx context.Context, question string, got []string) (string, error) {
			assert.Len(t, got, 2)
			return "Goroutines are lightweight threads.", nil
		}

		adapter, err := source.NewWeb(searcher, source.WithSummarizer(summarizer))
		require.NoError(t, err)

		candidates, err := adapter.Search(context.Background(), "what is a goroutine", 5)
		require.NoError(t, err)
		require.Len(t, candidates, 1)

		assert.Equal(t, "Goroutines are lightweight threads.", candidates[0].Content)
		assert.InDelta(t, 0.75, candidates[0].Score, 0.001)
		assert.Equal(t, core.SourceWebSearch, candidates[0].Source)
		assert.Equal(t, "https://example.org/goroutines", candidates[0].Metadata["url"])
		assert.Equal(t, "duckduckgo", candidates[0].Metadata["search_method"])
		assert.Equal(t, 1, summarizer.CallCount())
	})

	t.Run("falls back to snippet concat when summarizer fails", func(t *testing.T) {
		searcher := &mock.MockSearcher{
			SnippetsFunc: func(ctx context.Context, query string, max int) ([]source.Snippet, error) {
				return snippets, nil
			},
		}
		summarizer := aimock.NewMockSummarizer()
		summarizer.SummarizeFunc = func(ctx context.Context, question string, got []string) (string, error) {
			return "", errors.New("llm offline")
		}

		adapter, err := source.NewWeb(searcher, source.WithSummarizer(summarizer))
		require.NoError(t, err)

		candidates, err := adapter.Search(context.Background(), "what is a goroutine", 5)
		require.NoError(t, err)
		require.Len(t, candidates, 1)

		assert.Contains(t, candidates[0].Content, "lightweight thread")
		assert.Contains(t, candidates[0].Content, "multiplex")
	})

	t.Run("no summarizer truncates long snippets", func(t *testing.T) {
		long := strings.Repeat("x", 300)
		searcher := &mock.MockSearcher{
			SnippetsFunc: func(ctx context.Context, query string, max int) ([]source.Snippet, error) {
				return []source.Snippet{{Content: long}, {Content: "short"}, {Content: "ignored third"}}, nil
			},
		}
		adapter, err := source.NewWeb(searcher)
		require.NoError(t, err)

		candidates, err := adapter.Search(context.Background(), "anything", 5)
		require.NoError(t, err)
		require.Len(t, candidates, 1)

		assert.Equal(t, strings.Repeat("x", 200)+"... short", candidates[0].Content)
		assert.NotContains(t, candidates[0].Content, "ignored third")
	})

	t.Run("no snippets yields no candidates", func(t *testing.T) {
		adapter, err := source.NewWeb(&mock.MockSearcher{})
		require.NoError(t, err)

		candidates, err := adapter.Search(context.Background(), "anything", 5)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("propagates search errors", func(t *testing.T) {
		wantErr := errors.New("network down")
		searcher := &mock.MockSearcher{
			SnippetsFunc: func(ctx context.Context, query string, max int) ([]source.Snippet, error) {
				return nil, wantErr
			},
		}
		adapter, err := source.NewWeb(searcher)
		require.NoError(t, err)

		_, err = adapter.Search(context.Background(), "anything", 5)
		assert.ErrorIs(t, err, wantErr)
	})
}
