// Package ai defines the contract for the LLM collaborator used by the
// web knowledge tier, together with its configuration.
//
// Implementations live in subpackages: openai provides a client for
// OpenAI-compatible chat APIs, mock provides a test double. Consumers
// depend only on the Summarizer interface; the resolver treats the
// service as best-effort and falls back to raw snippets when it is
// unavailable.
package ai
