// Package moderation screens questions against static pattern lists
// before they reach any knowledge source. Checks fail open: a panic in
// the matcher approves the text rather than blocking the request.
package moderation
