// Package memory keeps bounded per-session conversation history and
// renders it into context for follow-up questions. History is an
// enhancement layer: it can improve a query but never blocks one, so
// persistence failures degrade to in-process state instead of erroring.
package memory
