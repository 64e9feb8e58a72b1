// Package optimize turns raw questions into search-ready queries
// (keywords, intent, synonym expansion) and reranks source candidates
// using those signals.
package optimize
