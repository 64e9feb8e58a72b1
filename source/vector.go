package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/quaero/core"
	"github.com/tmc/langchaingo/vectorstores"
)

// Vector delegates embedding and nearest-neighbor lookup to an external
// vector store. Hit scores are passed through unmodified: the store
// reports similarities already normalized to 0-1, and this adapter
// applies no calibration of its own.
type Vector struct {
	store   vectorstores.VectorStore
	timeout time.Duration
	logger  *slog.Logger
}

// VectorOption configures a Vector adapter.
type VectorOption func(*Vector)

// WithVectorTimeout bounds a single store lookup.
// Default is 6s.
func WithVectorTimeout(timeout time.Duration) VectorOption {
	return func(v *Vector) {
		if timeout > 0 {
			v.timeout = timeout
		}
	}
}

// WithVectorLogger sets a custom logger.
// Default is slog.Default().
func WithVectorLogger(logger *slog.Logger) VectorOption {
	return func(v *Vector) {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
	}
}

// NewVector creates the vector-store adapter.
func NewVector(store vectorstores.VectorStore, opts ...VectorOption) (*Vector, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	v := &Vector{
		store:   store,
		timeout: 6 * time.Second,
		logger:  slog.Default().With("component", "vector-source"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Tag implements Adapter.
func (v *Vector) Tag() core.SourceTag {
	return core.SourceVectorStore
}

// Search performs a similarity lookup with a per-call timeout so a slow
// store degrades to the next tier instead of hanging the request.
func (v *Vector) Search(ctx context.Context, query string, topK int) ([]core.SearchCandidate, error) {
	callCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	docs, err := v.store.SimilaritySearch(callCtx, query, topK)
	if err != nil {
		v.logger.Warn("vector store lookup failed", "err", err)
		return nil, err
	}

	candidates := make([]core.SearchCandidate, 0, len(docs))
	for _, doc := range docs {
		metadata := make(map[string]string, len(doc.Metadata))
		for key, value := range doc.Metadata {
			metadata[key] = fmt.Sprint(value)
		}
		candidates = append(candidates, core.SearchCandidate{
			Content:  doc.PageContent,
			Score:    float64(doc.Score),
			Source:   core.SourceVectorStore,
			Metadata: metadata,
		})
	}

	v.logger.Debug("vector search done", "query", query, "hits", len(candidates))
	return candidates, nil
}
