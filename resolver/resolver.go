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


package resolver

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/memory"
	"github.com/poiesic/quaero/moderation"
	"github.com/poiesic/quaero/optimize"
	"github.com/poiesic/quaero/source"
)

const (
	fallbackAnswer = "I couldn't find relevant information. Try uploading a document or rephrasing your question."

	internalErrorAnswer = "Something went wrong while answering. Please try again."

	emptyQuestionAnswer = "Please enter a question."

	// Local-tier confidence is scaled from the reranked overlap score.
	// A perfect overlap still caps below 1.0; keyword matching alone
	// can't certify an answer.
	localConfidenceScale = 0.8
	localConfidenceBase  = 0.2
	localConfidenceCap   = 0.95
)

// Config holds the resolver's acceptance thresholds.
type Config struct {
	// TopK is how many candidates each source is asked for.
	TopK int

	// VectorThreshold is the minimum similarity for a vector-store hit
	// to be accepted. A Question may override it per request.
	VectorThreshold float64

	// LocalFloor is the minimum reranked score for a local-document hit
	// to be accepted.
	LocalFloor float64

	// FallbackConfidence is reported on the terminal fallback answer.
	FallbackConfidence float64
}

// DefaultConfig returns the standard acceptance thresholds.
func DefaultConfig() Config {
	return Config{
		TopK:               5,
		VectorThreshold:    0.3,
		LocalFloor:         0.1,
		FallbackConfidence: 0.3,
	}
}

// Resolver answers questions by walking the configured sources in
// priority order: uploaded documents, then the vector store, then web
// search, then a terminal fallback. Resolve never panics and never
// returns an error; every failure inside a tier degrades to the next
// one.
type Resolver struct {
	moderator *moderation.Moderator
	memory    *memory.Memory
	optimizer *optimize.Optimizer
	reranker  *optimize.Reranker
	local     source.Adapter
	vector    source.Adapter
	web       source.Adapter
	config    Config
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLocal sets the local-document source. Without it the tier is
// skipped.
func WithLocal(adapter source.Adapter) Option {
	return func(r *Resolver) {
		r.local = adapter
	}
}

// WithVector sets the vector-store source. Without it the tier is
// skipped.
func WithVector(adapter source.Adapter) Option {
	return func(r *Resolver) {
		r.vector = adapter
	}
}

// WithWeb sets the web-search source. Without it the tier is skipped.
func WithWeb(adapter source.Adapter) Option {
	return func(r *Resolver) {
		r.web = adapter
	}
}

// WithMemory sets the conversation memory.
// Default is a fresh in-process memory.
func WithMemory(mem *memory.Memory) Option {
	return func(r *Resolver) {
		if mem != nil {
			r.memory = mem
		}
	}
}

// WithConfig overrides the acceptance thresholds.
func WithConfig(config Config) Option {
	return func(r *Resolver) {
		r.config = config
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewResolver creates a resolver. All sources are optional; with none
// configured every question resolves to the fallback answer.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		moderator: moderation.NewModerator(),
		memory:    memory.NewMemory(),
		optimizer: optimize.NewOptimizer(),
		reranker:  optimize.NewReranker(optimize.DefaultRerankConfig()),
		config:    DefaultConfig(),
		logger:    slog.Default().With("component", "resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Memory exposes the resolver's conversation memory.
func (r *Resolver) Memory() *memory.Memory {
	return r.memory
}

// SessionStats summarizes one session's recorded history.
func (r *Resolver) SessionStats(sessionID string) core.SessionStats {
	return r.memory.Stats(sessionID)
}

// SweepExpiredSessions drops idle sessions and returns how many were
// removed.
func (r *Resolver) SweepExpiredSessions(ctx context.Context) int {
	return r.memory.SweepExpired(ctx)
}

// Status reports the configured sources and current session count.
type Status struct {
	ActiveSessions int              `json:"active_sessions"`
	Sources        []core.SourceTag `json:"sources"`
}

// Status returns a snapshot of the resolver's configuration and state.
func (r *Resolver) Status() Status {
	status := Status{ActiveSessions: r.memory.ActiveSessions()}
	for _, adapter := range []source.Adapter{r.local, r.vector, r.web} {
		if adapter != nil {
			status.Sources = append(status.Sources, adapter.Tag())
		}
	}
	status.Sources = append(status.Sources, core.SourceFallback)
	return status
}

// Resolve answers a question. It always returns a usable result: the
// moderation refusal, a sourced answer, the fallback, or a generic
// internal-error answer if something panics inside a tier.
func (r *Resolver) Resolve(ctx context.Context, question core.Question) (result core.ResolutionResult) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("resolve panicked", "panic", rec)
			result = core.ResolutionResult{
				Success:  false,
				Answer:   internalErrorAnswer,
				Metadata: map[string]string{"reason": "internal_error"},
			}
		}
		result.Elapsed = time.Since(start)
		result.Timestamp = time.Now().UTC()
		r.logger.Info("question resolved",
			"session", question.Session(),
			"source", result.Source,
			"confidence", result.Confidence,
			"success", result.Success,
			"elapsed", result.Elapsed)
	}()

	if err := core.ValidateQuestion(question); err != nil {
		return core.ResolutionResult{
			Success:  false,
			Answer:   emptyQuestionAnswer,
			Metadata: map[string]string{"reason": "invalid_question"},
		}
	}

	if mod := r.moderator.Moderate(question.Text, question.Session()); !mod.Safe {
		return core.ResolutionResult{
			Success:  false,
			Answer:   moderation.ResponseFor(mod.Category),
			Metadata: map[string]string{"reason": mod.Category},
		}
	}

	// Enhancement and optimization are independent transforms of the
	// same raw question, never chained.
	qc := r.optimizer.Optimize(question.Text)
	enhanced := r.memory.EnhanceQuery(question.Session(), question.Text)

	if result, ok := r.resolveLocal(ctx, question, qc); ok {
		return result
	}
	if result, ok := r.resolveVector(ctx, question, enhanced, qc); ok {
		return result
	}
	if result, ok := r.resolveWeb(ctx, question, enhanced, qc); ok {
		return result
	}

	return r.accept(ctx, question, core.ResolutionResult{
		Success:    true,
		Answer:     fallbackAnswer,
		Source:     core.SourceFallback,
		Confidence: r.config.FallbackConfidence,
		Metadata:   r.metadata(qc, nil),
	})
}

// resolveLocal searches uploaded documents. The raw question text is
// used for matching; conversation context would dilute the overlap
// score.
func (r *Resolver) resolveLocal(ctx context.Context, question core.Question, qc optimize.QueryContext) (core.ResolutionResult, bool) {
	if r.local == nil {
		return core.ResolutionResult{}, false
	}

	candidates, err := r.local.Search(ctx, question.Text, r.config.TopK)
	if err != nil {
		r.logger.Warn("local tier failed", "err", err)
		return core.ResolutionResult{}, false
	}
	if len(candidates) == 0 {
		return core.ResolutionResult{}, false
	}

	ranked := r.reranker.Rerank(candidates, qc)
	best := ranked[0]
	if best.Score <= r.config.LocalFloor {
		return core.ResolutionResult{}, false
	}

	confidence := math.Min(localConfidenceCap, localConfidenceScale*best.Score+localConfidenceBase)
	return r.accept(ctx, question, core.ResolutionResult{
		Success:    true,
		Answer:     best.Content,
		Source:     core.SourceLocalDocument,
		Confidence: confidence,
		Metadata:   r.metadata(qc, best.Metadata),
	}), true
}

// resolveVector queries the external vector store with the
// context-enhanced question. The store's native similarity gates
// acceptance and doubles as the answer confidence; rerank bonuses do
// not apply to this tier, its scores pass through unmodified.
func (r *Resolver) resolveVector(ctx context.Context, question core.Question, enhanced string, qc optimize.QueryContext) (core.ResolutionResult, bool) {
	if r.vector == nil {
		return core.ResolutionResult{}, false
	}

	candidates, err := r.vector.Search(ctx, enhanced, r.config.TopK)
	if err != nil {
		r.logger.Warn("vector tier failed", "err", err)
		return core.ResolutionResult{}, false
	}
	if len(candidates) == 0 {
		return core.ResolutionResult{}, false
	}

	threshold := r.config.VectorThreshold
	if question.Threshold != nil {
		threshold = *question.Threshold
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	if best.Score < threshold {
		return core.ResolutionResult{}, false
	}

	return r.accept(ctx, question, core.ResolutionResult{
		Success:    true,
		Answer:     best.Content,
		Source:     core.SourceVectorStore,
		Confidence: math.Min(1.0, best.Score),
		Metadata:   r.metadata(qc, best.Metadata),
	}), true
}

// resolveWeb searches the open web. Answers carrying the summarizer's
// no-information marker are rejected so the fallback message stays the
// single "nothing found" surface.
func (r *Resolver) resolveWeb(ctx context.Context, question core.Question, enhanced string, qc optimize.QueryContext) (core.ResolutionResult, bool) {
	if r.web == nil {
		return core.ResolutionResult{}, false
	}

	candidates, err := r.web.Search(ctx, enhanced, r.config.TopK)
	if err != nil {
		r.logger.Warn("web tier failed", "err", err)
		return core.ResolutionResult{}, false
	}
	if len(candidates) == 0 {
		return core.ResolutionResult{}, false
	}

	best := candidates[0]
	answer := strings.TrimSpace(best.Content)
	if answer == "" || strings.Contains(answer, source.NoInformationMarker) {
		return core.ResolutionResult{}, false
	}

	return r.accept(ctx, question, core.ResolutionResult{
		Success:    true,
		Answer:     answer,
		Source:     core.SourceWebSearch,
		Confidence: best.Score,
		Metadata:   r.metadata(qc, best.Metadata),
	}), true
}

// accept records the exchange in conversation memory and returns the
// result unchanged.
func (r *Resolver) accept(ctx context.Context, question core.Question, result core.ResolutionResult) core.ResolutionResult {
	turn := core.ConversationTurn{
		Query:      question.Text,
		Response:   result.Answer,
		Source:     result.Source,
		Confidence: result.Confidence,
	}
	if err := r.memory.AddTurn(ctx, question.Session(), turn); err != nil {
		r.logger.Warn("turn not recorded", "session", question.Session(), "err", err)
	}
	return result
}

func (r *Resolver) metadata(qc optimize.QueryContext, candidate map[string]string) map[string]string {
	metadata := make(map[string]string, len(candidate)+2)
	for key, value := range candidate {
		metadata[key] = value
	}
	metadata["intent"] = string(qc.Intent)
	if len(qc.Keywords) > 0 {
		metadata["keywords"] = strings.Join(qc.Keywords, ",")
	}
	return metadata
}
