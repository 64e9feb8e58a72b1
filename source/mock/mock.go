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


// Package mock provides test doubles for the source package.
package mock

import (
	"context"

	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/source"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

// MockVectorStore implements vectorstores.VectorStore with injectable
// behavior.
type MockVectorStore struct {
	AddDocumentsFunc     func(ctx context.Context, docs []schema.Document, options ...vectorstores.Option) ([]string, error)
	SimilaritySearchFunc func(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]schema.Document, error)

	searchCalls int
}

// AddDocuments implements vectorstores.VectorStore.
func (m *MockVectorStore) AddDocuments(ctx context.Context, docs []schema.Document, options ...vectorstores.Option) ([]string, error) {
	if m.AddDocumentsFunc != nil {
		return m.AddDocumentsFunc(ctx, docs, options...)
	}
	ids := make([]string, len(docs))
	return ids, nil
}

// SimilaritySearch implements vectorstores.VectorStore.
func (m *MockVectorStore) SimilaritySearch(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]schema.Document, error) {
	m.searchCalls++
	if m.SimilaritySearchFunc != nil {
		return m.SimilaritySearchFunc(ctx, query, numDocuments, options...)
	}
	return nil, nil
}

// SearchCalls returns how many times SimilaritySearch was invoked.
func (m *MockVectorStore) SearchCalls() int {
	return m.searchCalls
}

// MockSearcher implements source.SnippetSearcher with injectable behavior.
type MockSearcher struct {
	SnippetsFunc func(ctx context.Context, query string, max int) ([]source.Snippet, error)

	calls int
}

// Snippets implements source.SnippetSearcher.
func (m *MockSearcher) Snippets(ctx context.Context, query string, max int) ([]source.Snippet, error) {
	m.calls++
	if m.SnippetsFunc != nil {
		return m.SnippetsFunc(ctx, query, max)
	}
	return nil, nil
}

// Calls returns how many times Snippets was invoked.
func (m *MockSearcher) Calls() int {
	return m.calls
}

// MockAdapter implements source.Adapter with injectable behavior.
type MockAdapter struct {
	TagValue   core.SourceTag
	SearchFunc func(ctx context.Context, query string, topK int) ([]core.SearchCandidate, error)

	calls int
}

// Tag implements source.Adapter.
func (m *MockAdapter) Tag() core.SourceTag {
	return m.TagValue
}

// Search implements source.Adapter.
func (m *MockAdapter) Search(ctx context.Context, query string, topK int) ([]core.SearchCandidate, error) {
	m.calls++
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, topK)
	}
	return nil, nil
}

// Calls returns how many times Search was invoked.
func (m *MockAdapter) Calls() int {
	return m.calls
}
