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


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/storage"
)

// SessionRepository stores session snapshots in BadgerDB, one record per
// session. Saves replace the whole snapshot, so the in-memory session
// layer stays the source of truth for trimming.
type SessionRepository struct {
	backend *Backend
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(backend *Backend) (*SessionRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &SessionRepository{backend: backend}, nil
}

// SaveSession writes a session snapshot, replacing any previous one.
func (r *SessionRepository) SaveSession(ctx context.Context, session *core.Session) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSessionKey(session.ID)
		if err := tx.Set(key, storage.MarshalSession(session)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSessions reads every persisted session, keyed by session ID.
func (r *SessionRepository) LoadSessions(ctx context.Context) (map[string]*core.Session, error) {
	sessions := make(map[string]*core.Session)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sessionRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(value []byte) error {
				session, err := storage.UnmarshalSession(value)
				if err != nil {
					return err
				}
				sessions[session.ID] = session
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// DeleteSession removes a session snapshot by ID.
// Returns storage.ErrNotFound if the session doesn't exist.
func (r *SessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSessionKey(sessionID)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the backend owns the database handle.
func (r *SessionRepository) Close() error {
	return nil
}
