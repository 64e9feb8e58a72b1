// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package docstore

import (
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/quaero/core"
)

// Store is an in-memory, concurrency-safe document store. Documents are
// chunked once at ingest time with the union of all chunking strategies;
// chunks are immutable and discarded with the owning document.
type Store struct {
	mu         sync.RWMutex
	docs       map[core.ID]*entry
	byFilename map[string]core.ID
	logger     *slog.Logger
}

type entry struct {
	doc    core.Document
	chunks []core.DocumentChunk
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates an empty document store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		docs:       make(map[core.ID]*entry),
		byFilename: make(map[string]core.ID),
		logger:     slog.Default().With("component", "docstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates and ingests a document. A zero ID is replaced with a
// content-derived one, so re-adding identical content is idempotent.
// Returns the document's ID.
func (s *Store) Add(doc *core.Document) (core.ID, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return 0, err
	}

	ingested := *doc
	if ingested.ID == 0 {
		ingested.ID = core.IDFromContent(ingested.Text)
	}
	if ingested.UploadedAt.IsZero() {
		ingested.UploadedAt = time.Now().UTC()
	}

	chunks := buildChunks(ingested.ID, chunkAll(ingested.Text))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[ingested.ID] = &entry{doc: ingested, chunks: chunks}
	if ingested.Filename != "" {
		s.byFilename[ingested.Filename] = ingested.ID
	}

	s.logger.Info("document ingested",
		"id", uint64(ingested.ID),
		"filename", ingested.Filename,
		"chunks", len(chunks))
	return ingested.ID, nil
}

// AddText ingests plain text under a filename.
func (s *Store) AddText(filename, text string) (core.ID, error) {
	return s.Add(&core.Document{Filename: filename, Text: text})
}

// Get returns a document by ID.
func (s *Store) Get(id core.ID) (core.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.docs[id]
	if !ok {
		return core.Document{}, false
	}
	return e.doc, true
}

// Documents returns all stored documents.
func (s *Store) Documents() []core.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]core.Document, 0, len(s.docs))
	for _, e := range s.docs {
		docs = append(docs, e.doc)
	}
	return docs
}

// Chunks returns all chunks of all documents.
func (s *Store) Chunks() []core.DocumentChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var chunks []core.DocumentChunk
	for _, e := range s.docs {
		chunks = append(chunks, e.chunks...)
	}
	return chunks
}

// ChunksFor returns the chunks of one document.
func (s *Store) ChunksFor(id core.ID) []core.DocumentChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.docs[id]
	if !ok {
		return nil
	}
	chunks := make([]core.DocumentChunk, len(e.chunks))
	copy(chunks, e.chunks)
	return chunks
}

// Filename returns the filename of a stored document.
func (s *Store) Filename(id core.ID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.docs[id]; ok {
		return e.doc.Filename
	}
	return ""
}

// Remove evicts a document and its chunks.
func (s *Store) Remove(id core.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.docs[id]
	if !ok {
		return false
	}
	delete(s.docs, id)
	if e.doc.Filename != "" && s.byFilename[e.doc.Filename] == id {
		delete(s.byFilename, e.doc.Filename)
	}
	return true
}

// RemoveByFilename evicts the document ingested under the given filename.
func (s *Store) RemoveByFilename(filename string) bool {
	s.mu.Lock()
	id, ok := s.byFilename[filename]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return s.Remove(id)
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
