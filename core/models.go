package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// String renders the ID as an unsigned decimal.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceTag identifies which knowledge tier produced an answer.
type SourceTag string

const (
	// SourceLocalDocument marks answers found in uploaded documents.
	SourceLocalDocument SourceTag = "local_document"
	// SourceVectorStore marks answers from the external vector store.
	SourceVectorStore SourceTag = "vector_store"
	// SourceWebSearch marks answers synthesized from web search.
	SourceWebSearch SourceTag = "web_search"
	// SourceFallback marks the terminal "no information found" answer.
	SourceFallback SourceTag = "fallback"
)

// Intent classifies what kind of answer a question is asking for.
type Intent string

const (
	IntentDefinition   Intent = "definition"
	IntentHowTo        Intent = "howto"
	IntentComparison   Intent = "comparison"
	IntentExample      Intent = "example"
	IntentTroubleshoot Intent = "troubleshoot"
	IntentGeneral      Intent = "general"
)

// DefaultSessionID is used when a caller does not supply a session.
const DefaultSessionID = "default"

// Question is an immutable value object describing one request.
// Text must be non-empty after trimming. SessionID defaults to
// DefaultSessionID when empty. Threshold, when set, overrides the
// resolver's vector-store acceptance threshold for this request.
type Question struct {
	Text      string
	SessionID string
	Threshold *float64
}

// Session returns the effective session identifier.
func (q Question) Session() string {
	if q.SessionID == "" {
		return DefaultSessionID
	}
	return q.SessionID
}

// Document is an uploaded source text. Documents live for the process
// lifetime unless explicitly removed by the owning store.
type Document struct {
	ID         ID
	Filename   string
	Text       string
	Pages      int
	UploadedAt time.Time
}

// DocumentChunk is one scoreable piece of a Document. Chunks are created
// at ingest time and immutable thereafter; they are discarded together
// with the owning document.
type DocumentChunk struct {
	DocumentID    ID
	Index         int
	Content       string
	WordCount     int
	SentenceCount int
}

// SearchCandidate is a not-yet-accepted result produced by one source
// adapter. Score is a raw relevance on the adapter's own 0-1 scale.
// Candidates are transient and never persisted.
type SearchCandidate struct {
	Content  string
	Score    float64
	Source   SourceTag
	Metadata map[string]string
}

// ConversationTurn records one answered question within a session.
// Turns are appended by the resolver after each successful answer and
// never mutated.
type ConversationTurn struct {
	Query      string
	Response   string
	Source     SourceTag
	Confidence float64
	Timestamp  time.Time
}

// Session holds the bounded turn history for one conversation scope.
type Session struct {
	ID    string
	Turns []ConversationTurn
}

// ResolutionResult is the externally visible answer envelope. It is
// always returned, even on internal failure; the resolver never
// propagates a panic or error to its caller.
type ResolutionResult struct {
	Success    bool              `json:"success"`
	Answer     string            `json:"answer"`
	Source     SourceTag         `json:"source"`
	Confidence float64           `json:"confidence"`
	Elapsed    time.Duration     `json:"-"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// SessionStats summarizes one session's recorded history.
type SessionStats struct {
	Exists          bool              `json:"exists"`
	TurnCount       int               `json:"turn_count"`
	AvgConfidence   float64           `json:"avg_confidence"`
	Sources         map[SourceTag]int `json:"sources,omitempty"`
	DurationMinutes float64           `json:"duration_minutes"`
}
