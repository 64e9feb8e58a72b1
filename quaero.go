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


// Package quaero answers questions by walking tiered knowledge sources:
// uploaded documents, an optional vector store, web search with LLM
// synthesis, and a guaranteed fallback. The System facade wires the
// pieces together for embedding into other programs; the subpackages
// remain usable on their own.
package quaero

import (
	"context"
	"log/slog"

	"github.com/poiesic/quaero/ai"
	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/docstore"
	"github.com/poiesic/quaero/memory"
	"github.com/poiesic/quaero/resolver"
	"github.com/poiesic/quaero/source"
	"github.com/poiesic/quaero/storage"
	"github.com/poiesic/quaero/storage/badger"
	"github.com/tmc/langchaingo/vectorstores"
)

// System is the assembled question-answering stack.
type System struct {
	store    *docstore.Store
	loader   *docstore.Loader
	memory   *memory.Memory
	resolver *resolver.Resolver
	repo     storage.SessionRepository
	backend  *badger.Backend
	logger   *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	dbPath         string
	vectorStore    vectorstores.VectorStore
	summarizer     ai.Summarizer
	webSearch      bool
	resolverConfig *resolver.Config
}

// WithDatabasePath enables session persistence at the given BadgerDB
// directory. Without it, conversation history is in-process only.
func WithDatabasePath(path string) SystemOption {
	return func(o *systemOptions) {
		o.dbPath = path
	}
}

// WithVectorStore enables the vector-store tier.
func WithVectorStore(store vectorstores.VectorStore) SystemOption {
	return func(o *systemOptions) {
		o.vectorStore = store
	}
}

// WithWebSearch enables the web-search tier, optionally with an LLM
// summarizer for answer synthesis.
func WithWebSearch(summarizer ai.Summarizer) SystemOption {
	return func(o *systemOptions) {
		o.webSearch = true
		o.summarizer = summarizer
	}
}

// WithResolverConfig overrides the resolver's acceptance thresholds.
func WithResolverConfig(config resolver.Config) SystemOption {
	return func(o *systemOptions) {
		o.resolverConfig = &config
	}
}

// NewSystem assembles a question-answering system. Only the local
// document tier is always present; the rest join per the options.
func NewSystem(opts ...SystemOption) (*System, error) {
	options := &systemOptions{}
	for _, opt := range opts {
		opt(options)
	}

	store := docstore.NewStore()
	loader, err := docstore.NewLoader(store)
	if err != nil {
		return nil, err
	}

	s := &System{
		store:  store,
		loader: loader,
		logger: slog.Default(),
	}

	if options.dbPath != "" {
		backend, err := badger.OpenBackend(options.dbPath, false)
		if err != nil {
			return nil, err
		}
		repo, err := badger.NewSessionRepository(backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
		s.backend = backend
		s.repo = repo
		s.memory = memory.NewMemory(memory.WithRepository(repo))
	} else {
		s.memory = memory.NewMemory()
	}

	local, err := source.NewLocal(store)
	if err != nil {
		s.closeStorage()
		return nil, err
	}

	resolverOpts := []resolver.Option{
		resolver.WithLocal(local),
		resolver.WithMemory(s.memory),
	}

	if options.vectorStore != nil {
		vector, err := source.NewVector(options.vectorStore)
		if err != nil {
			s.closeStorage()
			return nil, err
		}
		resolverOpts = append(resolverOpts, resolver.WithVector(vector))
	}

	if options.webSearch {
		webOpts := []source.WebOption{}
		if options.summarizer != nil {
			webOpts = append(webOpts, source.WithSummarizer(options.summarizer))
		}
		web, err := source.NewWeb(source.NewDuckDuckGo(), webOpts...)
		if err != nil {
			s.closeStorage()
			return nil, err
		}
		resolverOpts = append(resolverOpts, resolver.WithWeb(web))
	}

	if options.resolverConfig != nil {
		resolverOpts = append(resolverOpts, resolver.WithConfig(*options.resolverConfig))
	}

	s.resolver = resolver.NewResolver(resolverOpts...)
	return s, nil
}

// Restore loads persisted sessions. Call once before answering.
func (s *System) Restore(ctx context.Context) error {
	return s.memory.Restore(ctx)
}

// Ask answers a question in the default session.
func (s *System) Ask(ctx context.Context, text string) core.ResolutionResult {
	return s.resolver.Resolve(ctx, core.Question{Text: text})
}

// AskQuestion answers a fully specified question.
func (s *System) AskQuestion(ctx context.Context, question core.Question) core.ResolutionResult {
	return s.resolver.Resolve(ctx, question)
}

// LoadDocument ingests a file from disk into the local tier.
func (s *System) LoadDocument(path string) (core.ID, error) {
	return s.loader.LoadFile(path)
}

// AddText ingests raw text into the local tier.
func (s *System) AddText(filename, text string) (core.ID, error) {
	return s.store.AddText(filename, text)
}

// SessionStats summarizes one session's recorded history.
func (s *System) SessionStats(sessionID string) core.SessionStats {
	return s.resolver.SessionStats(sessionID)
}

// SweepExpiredSessions drops idle sessions and returns how many were
// removed.
func (s *System) SweepExpiredSessions(ctx context.Context) int {
	return s.resolver.SweepExpiredSessions(ctx)
}

// Store exposes the document store for direct management.
func (s *System) Store() *docstore.Store {
	return s.store
}

// Loader exposes the document loader.
func (s *System) Loader() *docstore.Loader {
	return s.loader
}

// Resolver exposes the underlying resolver.
func (s *System) Resolver() *resolver.Resolver {
	return s.resolver
}

// Close releases session storage, if any.
func (s *System) Close() error {
	return s.closeStorage()
}

func (s *System) closeStorage() error {
	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			s.logger.Error("error closing session repository", "err", err)
		}
	}
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}
