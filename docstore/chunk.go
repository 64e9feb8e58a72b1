package docstore

import (
	"strings"

	"github.com/poiesic/quaero/core"
)

// Chunking parameters. Tunable defaults, not guaranteed-correct.
const (
	sentenceChunkSize = 500
	windowWidth       = 400
	windowOverlap     = 100
)

var sentenceEnders = []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}

// chunkAll runs the three chunking strategies over the source text and
// returns the union of their output, deduplicated by content. Using
// several granularities raises recall on long documents: a paragraph
// may match where its individual sentences do not, and overlapping
// windows catch matches that straddle sentence boundaries.
func chunkAll(text string) []string {
	seen := make(map[string]bool)
	var chunks []string

	add := func(pieces []string) {
		for _, piece := range pieces {
			piece = strings.TrimSpace(piece)
			if piece == "" || seen[piece] {
				continue
			}
			seen[piece] = true
			chunks = append(chunks, piece)
		}
	}

	add(splitSentences(text, sentenceChunkSize))
	add(splitParagraphs(text))
	add(splitWindows(text, windowWidth, windowOverlap))

	return chunks
}

// splitSentences groups sentences into chunks of roughly maxChars.
func splitSentences(text string, maxChars int) []string {
	sentences := splitIntoSentences(text)

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+len(sentence) >= maxChars {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
		current.WriteString(" ")
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

// splitParagraphs splits on blank lines.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			paragraphs = append(paragraphs, part)
		}
	}
	return paragraphs
}

// splitWindows cuts fixed-width overlapping windows over the text.
func splitWindows(text string, width, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= width {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	step := width - overlap
	if step < 1 {
		step = 1
	}

	var windows []string
	for start := 0; start < len(runes); start += step {
		end := start + width
		if end > len(runes) {
			end = len(runes)
		}
		windows = append(windows, strings.TrimSpace(string(runes[start:end])))
		if end == len(runes) {
			break
		}
	}
	return windows
}

func splitIntoSentences(text string) []string {
	sentences := []string{text}
	for _, ender := range sentenceEnders {
		var next []string
		for _, sentence := range sentences {
			parts := strings.SplitAfter(sentence, ender)
			next = append(next, parts...)
		}
		sentences = next
	}

	out := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		if strings.TrimSpace(sentence) != "" {
			out = append(out, sentence)
		}
	}
	return out
}

// buildChunks converts chunk contents into DocumentChunk values with
// derived word and sentence boundaries.
func buildChunks(docID core.ID, contents []string) []core.DocumentChunk {
	chunks := make([]core.DocumentChunk, len(contents))
	for i, content := range contents {
		chunks[i] = core.DocumentChunk{
			DocumentID:    docID,
			Index:         i,
			Content:       content,
			WordCount:     len(strings.Fields(content)),
			SentenceCount: len(splitIntoSentences(content)),
		}
	}
	return chunks
}
