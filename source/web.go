package source

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/quaero/ai"
	"github.com/poiesic/quaero/core"
)

// NoInformationMarker is the literal the summarizer emits when the
// snippets contain no answer. The resolver rejects web answers that
// carry it.
const NoInformationMarker = "No relevant information"

// snippetTruncateLen bounds each snippet in the LLM-less fallback.
const snippetTruncateLen = 200

// Web searches the open web and synthesizes an answer from the top
// snippets. When no summarizer is configured, or the LLM is down, it
// degrades to concatenating the top two snippets.
type Web struct {
	searcher   SnippetSearcher
	summarizer ai.Summarizer
	timeout    time.Duration
	confidence float64
	logger     *slog.Logger
}

// WebOption configures a Web adapter.
type WebOption func(*Web)

// WithSummarizer sets the LLM used for snippet synthesis.
// Without one the adapter always uses the concatenation fallback.
func WithSummarizer(summarizer ai.Summarizer) WebOption {
	return func(w *Web) {
		w.summarizer = summarizer
	}
}

// WithWebTimeout bounds each outbound call (search, then summarize).
// Default is 6s.
func WithWebTimeout(timeout time.Duration) WebOption {
	return func(w *Web) {
		if timeout > 0 {
			w.timeout = timeout
		}
	}
}

// WithWebConfidence sets the fixed confidence reported for web answers.
// The search API reports no calibrated relevance, so the value is a
// tunable constant rather than a derived score. Default is 0.75.
func WithWebConfidence(confidence float64) WebOption {
	return func(w *Web) {
		if confidence > 0 && confidence <= 1 {
			w.confidence = confidence
		}
	}
}

// WithWebLogger sets a custom logger.
// Default is slog.Default().
func WithWebLogger(logger *slog.Logger) WebOption {
	return func(w *Web) {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
	}
}

// NewWeb creates the web-search adapter.
func NewWeb(searcher SnippetSearcher, opts ...WebOption) (*Web, error) {
	if searcher == nil {
		return nil, ErrSnippetSearcherRequired
	}
	w := &Web{
		searcher:   searcher,
		timeout:    6 * time.Second,
		confidence: 0.75,
		logger:     slog.Default().With("component", "web-source"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Tag implements Adapter.
func (w *Web) Tag() core.SourceTag {
	return core.SourceWebSearch
}

// Search fetches snippets and synthesizes a single answer candidate.
// Both outbound calls carry their own timeout so a slow dependency
// degrades the tier instead of hanging the request.
func (w *Web) Search(ctx context.Context, query string, topK int) ([]core.SearchCandidate, error) {
	searchCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	snippets, err := w.searcher.Snippets(searchCtx, query, topK)
	if err != nil {
		w.logger.Warn("web search failed", "err", err)
		return nil, err
	}
	if len(snippets) == 0 {
		return nil, nil
	}

	answer := w.synthesize(ctx, query, snippets)
	if answer == "" {
		return nil, nil
	}

	metadata := map[string]string{"search_method": "duckduckgo"}
	if snippets[0].URL != "" {
		metadata["url"] = snippets[0].URL
	}

	return []core.SearchCandidate{{
		Content:  answer,
		Score:    w.confidence,
		Source:   core.SourceWebSearch,
		Metadata: metadata,
	}}, nil
}

func (w *Web) synthesize(ctx context.Context, query string, snippets []Snippet) string {
	if w.summarizer != nil {
		summarizeCtx, cancel := context.WithTimeout(ctx, w.timeout)
		defer cancel()

		contents := make([]string, len(snippets))
		for i, snippet := range snippets {
			contents[i] = snippet.Content
		}

		summary, err := w.summarizer.Summarize(summarizeCtx, query, contents)
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}
		if err != nil {
			w.logger.Warn("summarizer unavailable, falling back to snippets", "err", err)
		}
	}

	return concatSnippets(snippets)
}

// concatSnippets joins the top two snippets, each truncated, as the
// LLM-less answer.
func concatSnippets(snippets []Snippet) string {
	var parts []string
	for i, snippet := range snippets {
		if i >= 2 {
			break
		}
		content := snippet.Content
		if len(content) > snippetTruncateLen {
			content = content[:snippetTruncateLen] + "..."
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, " ")
}
