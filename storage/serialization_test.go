package storage

import (
	"testing"
	"time"

	"github.com/poiesic/quaero/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSerialization(t *testing.T) {
	session := &core.Session{
		ID: "sess-42",
		Turns: []core.ConversationTurn{
			{
				Query:      "what is a vector store",
				Response:   "A vector store indexes embeddings for similarity search.",
				Source:     core.SourceVectorStore,
				Confidence: 0.82,
				Timestamp:  time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
			},
			{
				Query:      "how do I query it",
				Response:   "Embed the question and ask for nearest neighbors.",
				Source:     core.SourceLocalDocument,
				Confidence: 0.64,
				Timestamp:  time.Date(2026, 8, 30, 11, 1, 0, 0, time.UTC),
			},
		},
	}

	t.Run("round trip", func(t *testing.T) {
		decoded, err := UnmarshalSession(MarshalSession(session))
		require.NoError(t, err)
		assert.Equal(t, session, decoded)
	})

	t.Run("truncated data", func(t *testing.T) {
		data := MarshalSession(session)
		_, err := UnmarshalSession(data[:len(data)/2])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}

func TestTurnSerialization(t *testing.T) {
	turn := &core.ConversationTurn{
		Query:      "what is RAG",
		Response:   "Retrieval-augmented generation.",
		Source:     core.SourceWebSearch,
		Confidence: 0.75,
		Timestamp:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	t.Run("round trip", func(t *testing.T) {
		decoded, err := UnmarshalTurn(MarshalTurn(turn))
		require.NoError(t, err)
		assert.Equal(t, turn, decoded)
	})

	t.Run("truncated data", func(t *testing.T) {
		_, err := UnmarshalTurn(MarshalTurn(turn)[:3])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}
