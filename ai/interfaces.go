package ai

import "context"

// Summarizer produces a concise answer to a question, grounded only in
// the supplied snippets. Implementations must be thread-safe for
// concurrent use.
type Summarizer interface {
	// Summarize synthesizes an answer from the snippets. The result must
	// not draw on knowledge outside the snippets; callers rely on this
	// to keep web answers attributable.
	// Returns an error if generation fails or the service is unavailable.
	Summarize(ctx context.Context, question string, snippets []string) (string, error)
}
