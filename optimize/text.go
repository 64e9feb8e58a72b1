package optimize

import (
	"regexp"
	"strings"
)

// Stop words to filter out during keyword extraction
var stopWords = map[string]bool{
	"the": true, "is": true, "at": true, "which": true, "on": true,
	"and": true, "a": true, "to": true, "are": true, "as": true,
	"of": true, "in": true, "for": true, "with": true,
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// extractKeywords tokenizes on word boundaries, lowercases, drops stop
// words and tokens of length <= 2, and de-duplicates preserving the
// order of first occurrence.
func extractKeywords(query string) []string {
	words := wordPattern.FindAllString(strings.ToLower(query), -1)
	seen := make(map[string]bool, len(words))
	keywords := make([]string, 0, len(words))

	for _, word := range words {
		if len(word) <= 2 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	return keywords
}

// containsAnyWord checks whether any of the marker words appears as a
// whole word in the text.
func containsAnyWord(text string, markers []string) bool {
	wordSet := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if cleaned != "" {
			wordSet[cleaned] = true
		}
	}
	for _, marker := range markers {
		if wordSet[marker] {
			return true
		}
	}
	return false
}
