package optimize

import (
	"sort"
	"strings"

	"github.com/poiesic/quaero/core"
)

// RerankConfig holds the rescoring bonuses. The defaults were chosen
// empirically; treat them as tunable, not as guaranteed-correct.
type RerankConfig struct {
	// KeywordBonus is added once per query keyword found in a candidate.
	KeywordBonus float64
	// IntentBonus is added when a candidate contains a marker word
	// matching the query's intent.
	IntentBonus float64
}

// DefaultRerankConfig returns the standard bonuses.
func DefaultRerankConfig() RerankConfig {
	return RerankConfig{
		KeywordBonus: 0.1,
		IntentBonus:  0.15,
	}
}

var (
	definitionMarkers = []string{"is", "means", "defined"}
	howtoMarkers      = []string{"step", "process", "method"}
)

// Reranker rescores a source's candidate list using keyword and intent
// match bonuses.
type Reranker struct {
	config RerankConfig
}

// NewReranker creates a reranker with the given bonuses.
func NewReranker(config RerankConfig) *Reranker {
	return &Reranker{config: config}
}

// Rerank returns the candidates sorted descending by adjusted score.
// Each candidate's score is raised by KeywordBonus per matched keyword
// and by IntentBonus for an intent marker match, then clamped to 1.0.
// The sort is stable: ties keep their original insertion order so
// identical inputs always produce identical output.
func (r *Reranker) Rerank(candidates []core.SearchCandidate, qc QueryContext) []core.SearchCandidate {
	if len(candidates) == 0 {
		return candidates
	}

	reranked := make([]core.SearchCandidate, len(candidates))
	copy(reranked, candidates)

	for i := range reranked {
		content := strings.ToLower(reranked[i].Content)

		boost := 0.0
		for _, keyword := range qc.Keywords {
			if strings.Contains(content, keyword) {
				boost += r.config.KeywordBonus
			}
		}

		switch qc.Intent {
		case core.IntentDefinition:
			if containsAnyWord(content, definitionMarkers) {
				boost += r.config.IntentBonus
			}
		case core.IntentHowTo:
			if containsAnyWord(content, howtoMarkers) {
				boost += r.config.IntentBonus
			}
		}

		adjusted := reranked[i].Score + boost
		if adjusted > 1.0 {
			adjusted = 1.0
		}
		reranked[i].Score = adjusted
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score > reranked[j].Score
	})

	return reranked
}
