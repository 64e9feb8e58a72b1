package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.SessionRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func makeSession(id string, turns int) *core.Session {
	session := &core.Session{ID: id}
	for i := 0; i < turns; i++ {
		session.Turns = append(session.Turns, core.ConversationTurn{
			Query:      "question",
			Response:   "answer",
			Source:     core.SourceLocalDocument,
			Confidence: 0.8,
			Timestamp:  time.Date(2026, 8, 30, 10, i, 0, 0, time.UTC),
		})
	}
	return session
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load", func(t *testing.T) {
		repo := newTestRepo(t)

		require.NoError(t, repo.SaveSession(ctx, makeSession("alpha", 2)))
		require.NoError(t, repo.SaveSession(ctx, makeSession("beta", 1)))

		sessions, err := repo.LoadSessions(ctx)
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Len(t, sessions["alpha"].Turns, 2)
		assert.Len(t, sessions["beta"].Turns, 1)
	})

	t.Run("save replaces snapshot", func(t *testing.T) {
		repo := newTestRepo(t)

		require.NoError(t, repo.SaveSession(ctx, makeSession("alpha", 1)))
		require.NoError(t, repo.SaveSession(ctx, makeSession("alpha", 3)))

		sessions, err := repo.LoadSessions(ctx)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Len(t, sessions["alpha"].Turns, 3)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newTestRepo(t)

		require.NoError(t, repo.SaveSession(ctx, makeSession("alpha", 1)))
		require.NoError(t, repo.DeleteSession(ctx, "alpha"))

		sessions, err := repo.LoadSessions(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})

	t.Run("delete missing", func(t *testing.T) {
		repo := newTestRepo(t)
		err := repo.DeleteSession(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("empty store", func(t *testing.T) {
		repo := newTestRepo(t)
		sessions, err := repo.LoadSessions(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})
}

func TestNewSessionRepository(t *testing.T) {
	repo, err := NewSessionRepository(nil)
	assert.Error(t, err)
	assert.Nil(t, repo)
}
