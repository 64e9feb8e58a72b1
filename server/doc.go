// Package server exposes the resolver over HTTP: a JSON query endpoint,
// document upload, session statistics, and a WebSocket ask loop for
// interactive clients.
package server
