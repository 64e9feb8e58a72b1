// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package optimize

import (
	"regexp"
	"strings"

	"github.com/poiesic/quaero/core"
)

// QueryContext is the output of query optimization: the search-optimized
// form of a raw question plus the signals used to rerank candidates.
type QueryContext struct {
	Original   string
	Expanded   string
	Keywords   []string
	Intent     core.Intent
	Confidence float64
}

// intentCategory pairs an intent with its trigger patterns. The slice
// order is the tie-break: definition-style phrasing is checked before
// how-to phrasing, and the first category with a match wins.
type intentCategory struct {
	intent   core.Intent
	patterns []*regexp.Regexp
}

var intentCategories = []intentCategory{
	{core.IntentDefinition, compileAll(`\bwhat is\b`, `\bdefine\b`, `\bmeans?\b`, `\bmeaning of\b`)},
	{core.IntentHowTo, compileAll(`\bhow to\b`, `\bhow do\b`, `\bsteps to\b`, `\bprocess of\b`)},
	{core.IntentComparison, compileAll(`\bvs\b`, `\bversus\b`, `\bcompare\b`, `\bdifference\b`)},
	{core.IntentExample, compileAll(`\bexample\b`, `\bfor instance\b`, `\bsuch as\b`, `\blike\b`)},
	{core.IntentTroubleshoot, compileAll(`\berror\b`, `\bproblem\b`, `\bissue\b`, `\bfailed?\b`)},
}

// synonyms is a small static table of domain terms expanded inline.
var synonyms = map[string][]string{
	"ml":     {"machine learning", "artificial intelligence", "AI"},
	"python": {"programming", "coding", "development"},
	"data":   {"information", "dataset", "records"},
	"model":  {"algorithm", "system", "framework"},
}

// synonymOrder keeps expansion deterministic across runs.
var synonymOrder = []string{"ml", "python", "data", "model"}

func compileAll(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}

// Optimizer turns a raw question into a search-optimized query with
// keyword, intent, and confidence hints.
type Optimizer struct{}

// NewOptimizer creates an optimizer with the built-in intent patterns
// and synonym table.
func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Optimize extracts keywords, classifies intent, expands synonyms, and
// estimates how answerable the query is. The confidence heuristic is
// min(0.9, 0.5 + 0.1*keywordCount); it is a heuristic, not a calibrated
// probability.
func (o *Optimizer) Optimize(query string) QueryContext {
	keywords := extractKeywords(query)
	intent := detectIntent(query)
	expanded := expandSynonyms(query)

	confidence := 0.5 + 0.1*float64(len(keywords))
	if confidence > 0.9 {
		confidence = 0.9
	}

	return QueryContext{
		Original:   query,
		Expanded:   expanded,
		Keywords:   keywords,
		Intent:     intent,
		Confidence: confidence,
	}
}

func detectIntent(query string) core.Intent {
	lowered := strings.ToLower(query)
	for _, category := range intentCategories {
		for _, pattern := range category.patterns {
			if pattern.MatchString(lowered) {
				return category.intent
			}
		}
	}
	return core.IntentGeneral
}

func expandSynonyms(query string) string {
	expanded := query
	lowered := strings.ToLower(query)

	for _, term := range synonymOrder {
		if !strings.Contains(lowered, term) {
			continue
		}
		expansion := term + " (" + strings.Join(synonyms[term], " OR ") + ")"
		expanded = strings.Replace(expanded, term, expansion, 1)
	}

	return expanded
}
