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


package storage

import (
	"context"

	"github.com/poiesic/quaero/core"
)

// SessionRepository persists conversation sessions so history survives
// restarts. Implementations must be thread-safe.
type SessionRepository interface {
	// SaveSession writes a session snapshot, replacing any previous
	// snapshot for the same session ID.
	SaveSession(ctx context.Context, session *core.Session) error

	// LoadSessions reads every persisted session, keyed by session ID.
	LoadSessions(ctx context.Context) (map[string]*core.Session, error)

	// DeleteSession removes a session by ID.
	// Returns ErrNotFound if the session doesn't exist.
	DeleteSession(ctx context.Context, sessionID string) error

	// Close closes the storage backend and releases resources.
	Close() error
}
