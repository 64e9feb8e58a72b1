// Package docstore provides the in-memory document store that backs the
// local-document knowledge tier.
//
// Documents are chunked at ingest time with the union of three
// strategies (sentence grouping, paragraph split, fixed-width
// overlapping windows), deduplicated by content. The Loader extracts
// text from uploaded files (PDF and plain text), and the Watcher keeps
// the store in sync with a directory on disk.
package docstore
