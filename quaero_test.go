package quaero

import (
	"context"
	"testing"

	"github.com/poiesic/quaero/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemAsk(t *testing.T) {
	ctx := context.Background()

	system, err := NewSystem()
	require.NoError(t, err)
	defer system.Close()

	_, err = system.AddText("gophers.txt",
		"Gophers are burrowing rodents found across North America.")
	require.NoError(t, err)

	t.Run("answers from documents", func(t *testing.T) {
		result := system.Ask(ctx, "where are gophers found")
		assert.True(t, result.Success)
		assert.Equal(t, core.SourceLocalDocument, result.Source)
	})

	t.Run("falls back when nothing matches", func(t *testing.T) {
		result := system.Ask(ctx, "completely unrelated topic qqq")
		assert.True(t, result.Success)
		assert.Equal(t, core.SourceFallback, result.Source)
	})

	t.Run("tracks sessions", func(t *testing.T) {
		system.AskQuestion(ctx, core.Question{Text: "where are gophers found", SessionID: "s1"})
		stats := system.SessionStats("s1")
		assert.True(t, stats.Exists)
		assert.Equal(t, 1, stats.TurnCount)
	})
}

func TestSystemPersistence(t *testing.T) {
	ctx := context.Background()
	dbPath := t.TempDir()

	system, err := NewSystem(WithDatabasePath(dbPath))
	require.NoError(t, err)

	_, err = system.AddText("gophers.txt",
		"Gophers are burrowing rodents found across North America.")
	require.NoError(t, err)
	system.AskQuestion(ctx, core.Question{Text: "where are gophers found", SessionID: "s1"})
	require.NoError(t, system.Close())

	reopened, err := NewSystem(WithDatabasePath(dbPath))
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Restore(ctx))

	assert.True(t, reopened.SessionStats("s1").Exists)
}
