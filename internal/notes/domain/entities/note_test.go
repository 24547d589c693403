package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memopad/internal/notes/domain/entities"
)

func TestNewNote(t *testing.T) {
	t.Run("empty title gets the default", func(t *testing.T) {
		note := entities.NewNote("user-1", "", "content", "")
		assert.Equal(t, entities.DefaultTitle, note.Title)
	})

	t.Run("empty color gets the first palette entry", func(t *testing.T) {
		note := entities.NewNote("user-1", "title", "", "")
		assert.Equal(t, entities.NoteColors[0], note.Color)
	})

	t.Run("provided values pass through", func(t *testing.T) {
		note := entities.NewNote("user-1", "title", "<p>markup</p>", entities.NoteColors[2])

		assert.Equal(t, "user-1", note.UserID)
		assert.Equal(t, "title", note.Title)
		assert.Equal(t, "<p>markup</p>", note.Content)
		assert.Equal(t, entities.NoteColors[2], note.Color)
		assert.False(t, note.IsFavorite)
	})
}

func TestIsValidColor(t *testing.T) {
	require.Len(t, entities.NoteColors, 6)

	for _, color := range entities.NoteColors {
		assert.True(t, entities.IsValidColor(color), color)
	}

	assert.False(t, entities.IsValidColor("bg-red-100 border-red-200"))
	assert.False(t, entities.IsValidColor(""))
}
