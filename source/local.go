package source

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/docstore"
)

// LocalConfig holds the local tier's scoring constants. The defaults
// were chosen empirically; treat them as tunable.
type LocalConfig struct {
	// Floor is the minimum token-overlap score for a chunk to become a
	// candidate.
	Floor float64
}

// DefaultLocalConfig returns the standard local scoring constants.
func DefaultLocalConfig() LocalConfig {
	return LocalConfig{Floor: 0.1}
}

// Local searches uploaded documents by token overlap. For each stored
// chunk the score is |question words ∩ chunk words| / |question words|.
type Local struct {
	store  *docstore.Store
	config LocalConfig
	logger *slog.Logger
}

// LocalOption configures a Local adapter.
type LocalOption func(*Local)

// WithLocalLogger sets a custom logger.
// Default is slog.Default().
func WithLocalLogger(logger *slog.Logger) LocalOption {
	return func(l *Local) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// WithLocalConfig overrides the scoring constants.
func WithLocalConfig(config LocalConfig) LocalOption {
	return func(l *Local) {
		l.config = config
	}
}

// NewLocal creates the local-document adapter.
func NewLocal(store *docstore.Store, opts ...LocalOption) (*Local, error) {
	if store == nil {
		return nil, ErrDocStoreRequired
	}
	l := &Local{
		store:  store,
		config: DefaultLocalConfig(),
		logger: slog.Default().With("component", "local-source"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Tag implements Adapter.
func (l *Local) Tag() core.SourceTag {
	return core.SourceLocalDocument
}

// Search scores every stored chunk against the question's word set and
// returns candidates above the floor, best first.
func (l *Local) Search(ctx context.Context, query string, topK int) ([]core.SearchCandidate, error) {
	questionWords := wordSet(query)
	if len(questionWords) == 0 {
		return nil, nil
	}

	var candidates []core.SearchCandidate
	for _, chunk := range l.store.Chunks() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		score := overlapScore(questionWords, chunk.Content)
		if score <= l.config.Floor {
			continue
		}

		candidates = append(candidates, core.SearchCandidate{
			Content: chunk.Content,
			Score:   score,
			Source:  core.SourceLocalDocument,
			Metadata: map[string]string{
				"document_id": strconv.FormatUint(uint64(chunk.DocumentID), 10),
				"filename":    l.store.Filename(chunk.DocumentID),
				"chunk_index": strconv.Itoa(chunk.Index),
			},
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}

	l.logger.Debug("local search done", "query", query, "candidates", len(candidates))
	return candidates, nil
}

func wordSet(text string) map[string]bool {
	words := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if cleaned != "" {
			words[cleaned] = true
		}
	}
	return words
}

func overlapScore(questionWords map[string]bool, content string) float64 {
	contentWords := wordSet(content)
	overlap := 0
	for word := range questionWords {
		if contentWords[word] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(questionWords))
}
