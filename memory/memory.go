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


package memory

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/storage"
)

const (
	// DefaultMaxTurns is how many turns a session keeps before the
	// oldest are dropped.
	DefaultMaxTurns = 5

	// DefaultMaxAge is how long an idle session survives a sweep.
	DefaultMaxAge = 24 * time.Hour

	// defaultContextTurns is how many recent turns feed query enhancement.
	defaultContextTurns = 2

	// answerTruncateLen bounds each answer quoted into context.
	answerTruncateLen = 150

	shardCount = 16
)

// Memory holds bounded per-session conversation history. Sessions are
// sharded by ID hash so concurrent requests on different sessions don't
// contend on one lock. Two writers racing on the same session resolve
// last-write-wins; turn order within a session is append order.
type Memory struct {
	shards   [shardCount]*shard
	maxTurns int
	maxAge   time.Duration
	repo     storage.SessionRepository
	logger   *slog.Logger
}

type shard struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// Option configures a Memory.
type Option func(*Memory)

// WithMaxTurns overrides the per-session turn cap.
// Default is DefaultMaxTurns.
func WithMaxTurns(maxTurns int) Option {
	return func(m *Memory) {
		if maxTurns > 0 {
			m.maxTurns = maxTurns
		}
	}
}

// WithMaxAge overrides the idle-session expiry age.
// Default is DefaultMaxAge.
func WithMaxAge(maxAge time.Duration) Option {
	return func(m *Memory) {
		if maxAge > 0 {
			m.maxAge = maxAge
		}
	}
}

// WithRepository sets a session repository so history survives restarts.
// Without one, sessions live only in process memory.
func WithRepository(repo storage.SessionRepository) Option {
	return func(m *Memory) {
		m.repo = repo
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Memory) {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
	}
}

// NewMemory creates a conversation memory.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		maxTurns: DefaultMaxTurns,
		maxAge:   DefaultMaxAge,
		logger:   slog.Default().With("component", "memory"),
	}
	for i := range m.shards {
		m.shards[i] = &shard{sessions: make(map[string]*core.Session)}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore loads persisted sessions into memory. Call once at startup,
// before serving queries. A no-op without a repository.
func (m *Memory) Restore(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}

	sessions, err := m.repo.LoadSessions(ctx)
	if err != nil {
		return fmt.Errorf("restore sessions: %w", err)
	}

	for id, session := range sessions {
		if len(session.Turns) > m.maxTurns {
			session.Turns = session.Turns[len(session.Turns)-m.maxTurns:]
		}
		s := m.shardFor(id)
		s.mu.Lock()
		s.sessions[id] = session
		s.mu.Unlock()
	}

	m.logger.Info("sessions restored", "count", len(sessions))
	return nil
}

func (m *Memory) shardFor(sessionID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return m.shards[h.Sum32()%shardCount]
}

// AddTurn records a completed exchange, dropping the oldest turn once
// the session exceeds the cap. The turn's timestamp is set to now if
// zero.
func (m *Memory) AddTurn(ctx context.Context, sessionID string, turn core.ConversationTurn) error {
	if err := core.ValidateTurn(&turn); err != nil {
		return err
	}
	if sessionID == "" {
		sessionID = core.DefaultSessionID
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now().UTC()
	}

	s := m.shardFor(sessionID)
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		session = &core.Session{ID: sessionID}
		s.sessions[sessionID] = session
	}
	session.Turns = append(session.Turns, turn)
	if len(session.Turns) > m.maxTurns {
		session.Turns = session.Turns[len(session.Turns)-m.maxTurns:]
	}
	snapshot := *session
	snapshot.Turns = append([]core.ConversationTurn(nil), session.Turns...)
	s.mu.Unlock()

	m.persist(ctx, &snapshot)
	return nil
}

// persist mirrors the trimmed session to the repository. Persistence
// failures are logged, not surfaced: history is an enhancement and must
// never fail a query.
func (m *Memory) persist(ctx context.Context, session *core.Session) {
	if m.repo == nil {
		return
	}
	if err := m.repo.SaveSession(ctx, session); err != nil {
		m.logger.Warn("session persist failed", "session", session.ID, "err", err)
	}
}

// Context renders the last turns of a session as alternating Q:/A:
// lines, oldest first. Answers are truncated so one verbose response
// can't crowd out the rest. Returns "" for an unknown session.
func (m *Memory) Context(sessionID string, lastN int) string {
	if sessionID == "" {
		sessionID = core.DefaultSessionID
	}
	if lastN <= 0 {
		lastN = defaultContextTurns
	}

	s := m.shardFor(sessionID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok || len(session.Turns) == 0 {
		return ""
	}

	turns := session.Turns
	if len(turns) > lastN {
		turns = turns[len(turns)-lastN:]
	}

	var lines []string
	for _, turn := range turns {
		answer := turn.Response
		if len(answer) > answerTruncateLen {
			answer = answer[:answerTruncateLen] + "..."
		}
		lines = append(lines, "Q: "+turn.Query, "A: "+answer)
	}
	return strings.Join(lines, "\n")
}

// EnhanceQuery prefixes a question with recent conversation context.
// Returns the question unchanged when the session has no history.
func (m *Memory) EnhanceQuery(sessionID, question string) string {
	context := m.Context(sessionID, defaultContextTurns)
	if context == "" {
		return question
	}
	return fmt.Sprintf("Previous conversation:\n%s\n\nNew question: %s", context, question)
}

// Stats summarizes a session's recorded history.
func (m *Memory) Stats(sessionID string) core.SessionStats {
	if sessionID == "" {
		sessionID = core.DefaultSessionID
	}

	s := m.shardFor(sessionID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok || len(session.Turns) == 0 {
		return core.SessionStats{}
	}

	stats := core.SessionStats{
		Exists:    true,
		TurnCount: len(session.Turns),
		Sources:   make(map[core.SourceTag]int),
	}

	var total float64
	for _, turn := range session.Turns {
		total += turn.Confidence
		stats.Sources[turn.Source]++
	}
	stats.AvgConfidence = total / float64(len(session.Turns))

	first := session.Turns[0].Timestamp
	last := session.Turns[len(session.Turns)-1].Timestamp
	stats.DurationMinutes = last.Sub(first).Minutes()

	return stats
}

// ActiveSessions returns how many sessions currently hold history.
func (m *Memory) ActiveSessions() int {
	count := 0
	for _, s := range m.shards {
		s.mu.RLock()
		count += len(s.sessions)
		s.mu.RUnlock()
	}
	return count
}

// SweepExpired removes sessions whose latest turn is older than the
// expiry age and returns how many were dropped. Expiry is explicit:
// nothing ages out until a sweep runs.
func (m *Memory) SweepExpired(ctx context.Context) int {
	cutoff := time.Now().UTC().Add(-m.maxAge)
	swept := 0

	for _, s := range m.shards {
		s.mu.Lock()
		for id, session := range s.sessions {
			if len(session.Turns) == 0 {
				delete(s.sessions, id)
				continue
			}
			last := session.Turns[len(session.Turns)-1].Timestamp
			if last.Before(cutoff) {
				delete(s.sessions, id)
				swept++
				m.dropPersisted(ctx, id)
			}
		}
		s.mu.Unlock()
	}

	if swept > 0 {
		m.logger.Info("expired sessions swept", "count", swept)
	}
	return swept
}

func (m *Memory) dropPersisted(ctx context.Context, sessionID string) {
	if m.repo == nil {
		return
	}
	if err := m.repo.DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		m.logger.Warn("session delete failed", "session", sessionID, "err", err)
	}
}
