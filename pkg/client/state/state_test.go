package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memopad/pkg/client"
	"memopad/pkg/client/state"
)

func sampleNotes() []client.Note {
	return []client.Note{
		{ID: "note-3", Title: "Meeting notes", Content: "<p>agenda</p>", IsFavorite: true},
		{ID: "note-2", Title: "Shopping", Content: "<p>Milk and bread</p>"},
		{ID: "note-1", Title: "제목 없음", Content: "<p>draft</p>"},
	}
}

func TestReduce(t *testing.T) {
	t.Run("NotesLoaded replaces the whole list", func(t *testing.T) {
		next := state.Reduce(nil, state.NotesLoaded{Notes: sampleNotes()})
		require.Len(t, next, 3)
		assert.Equal(t, "note-3", next[0].ID)
	})

	t.Run("NoteCreated prepends", func(t *testing.T) {
		notes := sampleNotes()
		next := state.Reduce(notes, state.NoteCreated{Note: client.Note{ID: "note-4"}})

		require.Len(t, next, 4)
		assert.Equal(t, "note-4", next[0].ID)
		assert.Equal(t, "note-3", next[1].ID)
	})

	t.Run("NoteReplaced swaps matching id in place", func(t *testing.T) {
		notes := sampleNotes()
		next := state.Reduce(notes, state.NoteReplaced{
			Note: client.Note{ID: "note-2", Title: "Groceries", Content: "eggs"},
		})

		require.Len(t, next, 3)
		assert.Equal(t, "Groceries", next[1].Title)
		assert.Equal(t, "Shopping", notes[1].Title, "input must stay untouched")
	})

	t.Run("FavoriteToggled flips only the matching note", func(t *testing.T) {
		next := state.Reduce(sampleNotes(), state.FavoriteToggled{NoteID: "note-2", IsFavorite: true})

		assert.True(t, next[1].IsFavorite)
		assert.True(t, next[0].IsFavorite)
		assert.False(t, next[2].IsFavorite)
	})

	t.Run("NoteDeleted removes the matching note", func(t *testing.T) {
		next := state.Reduce(sampleNotes(), state.NoteDeleted{NoteID: "note-2"})

		require.Len(t, next, 2)
		assert.Equal(t, "note-3", next[0].ID)
		assert.Equal(t, "note-1", next[1].ID)
	})

	t.Run("unknown id leaves state unchanged", func(t *testing.T) {
		notes := sampleNotes()
		next := state.Reduce(notes, state.NoteDeleted{NoteID: "missing"})
		assert.Equal(t, notes, next)
	})
}

func TestSearch(t *testing.T) {
	notes := sampleNotes()

	t.Run("case-insensitive title match", func(t *testing.T) {
		found := state.Search(notes, "meeting")
		require.Len(t, found, 1)
		assert.Equal(t, "note-3", found[0].ID)
	})

	t.Run("case-insensitive content match", func(t *testing.T) {
		found := state.Search(notes, "MILK")
		require.Len(t, found, 1)
		assert.Equal(t, "note-2", found[0].ID)
	})

	t.Run("markup is searched as stored", func(t *testing.T) {
		found := state.Search(notes, "<p>")
		assert.Len(t, found, 3)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, state.Search(notes, ""), 3)
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		assert.Empty(t, state.Search(notes, "nonexistent"))
	})
}

func TestPartition(t *testing.T) {
	pinned, regular := state.Partition(sampleNotes())

	require.Len(t, pinned, 1)
	assert.Equal(t, "note-3", pinned[0].ID)

	require.Len(t, regular, 2)
	assert.Equal(t, "note-2", regular[0].ID)
	assert.Equal(t, "note-1", regular[1].ID)
}

func TestStore(t *testing.T) {
	t.Run("events accumulate", func(t *testing.T) {
		store := state.NewStore()
		store.Apply(state.NotesLoaded{Notes: sampleNotes()})
		store.Apply(state.NoteCreated{Note: client.Note{ID: "note-4", Title: "New"}})
		store.Apply(state.NoteDeleted{NoteID: "note-1"})

		notes := store.Notes()
		require.Len(t, notes, 3)
		assert.Equal(t, "note-4", notes[0].ID)
	})

	t.Run("Notes returns a copy", func(t *testing.T) {
		store := state.NewStore()
		store.Apply(state.NotesLoaded{Notes: sampleNotes()})

		notes := store.Notes()
		notes[0].Title = "mutated"

		assert.Equal(t, "Meeting notes", store.Notes()[0].Title)
	})

	t.Run("partition filters before splitting", func(t *testing.T) {
		store := state.NewStore()
		store.Apply(state.NotesLoaded{Notes: sampleNotes()})

		pinned, regular := store.Partition("agenda")
		require.Len(t, pinned, 1)
		assert.Empty(t, regular)
	})
}
