package source

import (
	"context"

	"github.com/poiesic/quaero/core"
)

// Adapter is one knowledge tier. Adapters are constructed as
// present-or-absent at startup; the resolver branches on a typed nil
// check, never on runtime introspection.
//
// Search returns candidates ranked by the adapter's own scoring, or an
// error when the tier's dependency is unavailable. An error means
// "skip this tier", not "abort the request": adapters must not panic
// past this boundary.
type Adapter interface {
	// Tag identifies the tier in results and logs.
	Tag() core.SourceTag

	// Search looks up candidates for the query, at most topK.
	Search(ctx context.Context, query string, topK int) ([]core.SearchCandidate, error)
}
