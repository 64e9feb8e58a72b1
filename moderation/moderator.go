package moderation

import (
	"log/slog"
	"regexp"
	"strings"
)

// Result is the outcome of a moderation check.
type Result struct {
	Safe     bool
	Category string
	Flagged  []string
}

// categories are checked in this order; the first category with a match
// is the one reported.
var categoryOrder = []string{"profanity", "harmful", "inappropriate"}

var categoryPatterns = map[string][]*regexp.Regexp{
	"profanity": {
		regexp.MustCompile(`\b(damn|hell|shit|fuck|bitch|ass)\b`),
		regexp.MustCompile(`\b(idiot|stupid|dumb)\b`),
	},
	"harmful": {
		regexp.MustCompile(`how to (?:hack|break|steal|harm)`),
		regexp.MustCompile(`make (?:bomb|weapon|drug)`),
	},
	"inappropriate": {
		regexp.MustCompile(`sexual|porn|explicit`),
		regexp.MustCompile(`violence|gore`),
		regexp.MustCompile(`racist|discrimination`),
	},
}

var categoryResponses = map[string]string{
	"profanity":     "Please use appropriate language.",
	"harmful":       "I cannot assist with harmful activities.",
	"inappropriate": "Please ask about appropriate topics.",
}

// Moderator screens user input against fixed category pattern groups.
// The zero value is not usable; create one with NewModerator.
type Moderator struct {
	logger *slog.Logger
}

// Option configures a Moderator.
type Option func(*Moderator)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Moderator) {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
	}
}

// NewModerator creates a moderator with the built-in pattern groups.
func NewModerator(opts ...Option) *Moderator {
	m := &Moderator{
		logger: slog.Default().With("component", "moderation"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Moderate screens text and reports whether it is safe. Empty or
// whitespace-only text is always safe. Moderate never fails: a fault
// while scanning yields a safe verdict so a gate bug cannot take the
// whole service down.
func (m *Moderator) Moderate(text, userID string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("moderation scan fault, treating input as safe", "panic", r)
			result = Result{Safe: true, Category: "approved"}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return Result{Safe: true, Category: "approved"}
	}

	lowered := strings.ToLower(text)
	for _, category := range categoryOrder {
		var flagged []string
		for _, pattern := range categoryPatterns[category] {
			flagged = append(flagged, pattern.FindAllString(lowered, -1)...)
		}
		if len(flagged) > 0 {
			m.logger.Warn("content flagged",
				"category", category,
				"user", redactUser(userID))
			return Result{Safe: false, Category: category, Flagged: dedup(flagged)}
		}
	}

	return Result{Safe: true, Category: "approved"}
}

// ResponseFor returns the user-facing refusal message for a category.
func ResponseFor(category string) string {
	if response, ok := categoryResponses[category]; ok {
		return response
	}
	return "I cannot assist with this request."
}

// redactUser keeps only a short prefix of the user identifier for logs.
func redactUser(userID string) string {
	if userID == "" {
		return "anon"
	}
	if len(userID) <= 4 {
		return userID[:1] + "***"
	}
	return userID[:4] + "***"
}

func dedup(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
