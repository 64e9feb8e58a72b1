package docstore

import (
	"testing"

	"github.com/poiesic/quaero/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAdd(t *testing.T) {
	store := NewStore()

	id, err := store.AddText("notes.txt", "Retrieval augmented generation combines search with generation.")
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, 1, store.Len())

	doc, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "notes.txt", doc.Filename)
	assert.False(t, doc.UploadedAt.IsZero())

	chunks := store.ChunksFor(id)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.Equal(t, id, chunk.DocumentID)
		assert.NotEmpty(t, chunk.Content)
		assert.Positive(t, chunk.WordCount)
	}
}

func TestStoreAdd_Idempotent(t *testing.T) {
	store := NewStore()

	id1, err := store.AddText("a.txt", "identical content")
	require.NoError(t, err)
	id2, err := store.AddText("a.txt", "identical content")
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, store.Len())
}

func TestStoreAdd_Invalid(t *testing.T) {
	store := NewStore()

	_, err := store.Add(&core.Document{Filename: "empty.txt"})
	assert.ErrorIs(t, err, core.ErrEmptyDocumentText)

	_, err = store.Add(nil)
	assert.ErrorIs(t, err, core.ErrInvalidDocument)
}

func TestStoreRemove(t *testing.T) {
	store := NewStore()

	id, err := store.AddText("gone.txt", "ephemeral content")
	require.NoError(t, err)

	assert.True(t, store.Remove(id))
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Chunks())
	assert.False(t, store.Remove(id))
}

func TestStoreRemoveByFilename(t *testing.T) {
	store := NewStore()

	_, err := store.AddText("watched.md", "# Heading\n\nSome body text.")
	require.NoError(t, err)

	assert.True(t, store.RemoveByFilename("watched.md"))
	assert.False(t, store.RemoveByFilename("watched.md"))
	assert.Equal(t, 0, store.Len())
}

func TestChunkAll_Strategies(t *testing.T) {
	text := "First sentence about gophers. Second sentence about burrows.\n\n" +
		"A second paragraph that talks about something entirely different."

	chunks := chunkAll(text)
	require.NotEmpty(t, chunks)

	// Dedup: no content appears twice.
	seen := make(map[string]bool)
	for _, chunk := range chunks {
		assert.False(t, seen[chunk], "duplicate chunk: %q", chunk)
		seen[chunk] = true
	}

	// Paragraph strategy must surface the second paragraph on its own.
	assert.Contains(t, chunks, "A second paragraph that talks about something entirely different.")
}

func TestSplitWindows_Overlap(t *testing.T) {
	text := ""
	for i := 0; i < 100; i++ {
		text += "0123456789"
	}

	windows := splitWindows(text, 400, 100)
	require.Greater(t, len(windows), 1)

	// Consecutive windows share their overlap region.
	first := windows[0]
	second := windows[1]
	assert.Equal(t, first[300:400], second[0:100])
}

func TestSplitSentences_GroupsBySize(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "This sentence is repeated to make the document long enough. "
	}

	chunks := splitSentences(long, 500)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 600)
	}
}
