package openai

import (
	"fmt"
	"strings"
)

const summaryPromptTemplate = `You are a careful research assistant. Answer the question using ONLY the numbered snippets below. If the snippets do not contain the answer, say "No relevant information found." Do not invent facts.

Question: %s

Snippets:
%s

Concise answer:`

// buildSummaryPrompt renders the grounded-synthesis prompt.
func buildSummaryPrompt(question string, snippets []string) string {
	var numbered strings.Builder
	for i, snippet := range snippets {
		fmt.Fprintf(&numbered, "[%d] %s\n", i+1, snippet)
	}
	return fmt.Sprintf(summaryPromptTemplate, question, numbered.String())
}
