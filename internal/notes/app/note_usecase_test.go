package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memopad/internal/notes/app"
	"memopad/internal/notes/domain/entities"
	"memopad/internal/notes/ports/api"
)

var errStorageFailure = errors.New("storage failure")

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	return m.Called(ctx, noteID, userID).Error(0)
}

func storedNote(userID string) *entities.Note {
	return &entities.Note{
		ID:         "note-1",
		UserID:     userID,
		Title:      "shopping list",
		Content:    "<p>milk</p>",
		Color:      entities.DefaultColor(),
		IsFavorite: false,
		CreatedAt:  time.Now().Add(-time.Hour),
	}
}

func TestListNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("returns notes newest first", func(t *testing.T) {
		repo := new(mockNoteRepository)
		notes := []*entities.Note{storedNote("user-1")}
		repo.On("ListByUserID", mock.Anything, "user-1").Return(notes, nil).Once()

		uc := app.NewNoteUseCase(repo)
		result, err := uc.ListNotes(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, notes, result)
		repo.AssertExpectations(t)
	})

	t.Run("empty list is not an error", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("ListByUserID", mock.Anything, "user-1").Return([]*entities.Note{}, nil).Once()

		uc := app.NewNoteUseCase(repo)
		result, err := uc.ListNotes(ctx, "user-1")

		require.NoError(t, err)
		assert.Empty(t, result)
		repo.AssertExpectations(t)
	})

	t.Run("storage error is wrapped", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("ListByUserID", mock.Anything, "user-1").Return(nil, errStorageFailure).Once()

		uc := app.NewNoteUseCase(repo)
		result, err := uc.ListNotes(ctx, "user-1")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, errStorageFailure)
		repo.AssertExpectations(t)
	})
}

func TestCreateNote(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		title       string
		content     string
		color       string
		expectedErr error
		wantTitle   string
		wantColor   string
	}{
		{
			name:      "title and content provided",
			title:     "shopping list",
			content:   "<p>milk</p>",
			color:     "bg-pink-100 border-pink-200",
			wantTitle: "shopping list",
			wantColor: "bg-pink-100 border-pink-200",
		},
		{
			name:      "content only gets default title",
			title:     "",
			content:   "<p>milk</p>",
			wantTitle: entities.DefaultTitle,
			wantColor: entities.DefaultColor(),
		},
		{
			name:      "title only with empty content",
			title:     "just a title",
			content:   "",
			wantTitle: "just a title",
			wantColor: entities.DefaultColor(),
		},
		{
			name:        "both empty rejected",
			title:       "",
			content:     "",
			expectedErr: app.ErrEmptyNote,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			repo := new(mockNoteRepository)

			if ttt.expectedErr == nil {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
					return n.UserID == "user-1" && n.Title == ttt.wantTitle && n.Color == ttt.wantColor
				})).Return(&entities.Note{
					ID:      "note-1",
					UserID:  "user-1",
					Title:   ttt.wantTitle,
					Content: ttt.content,
					Color:   ttt.wantColor,
				}, nil).Once()
			}

			uc := app.NewNoteUseCase(repo)
			note, err := uc.CreateNote(ctx, "user-1", ttt.title, ttt.content, ttt.color)

			if ttt.expectedErr != nil {
				require.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, note)
			} else {
				require.NoError(t, err)
				require.NotNil(t, note)
				assert.Equal(t, ttt.wantTitle, note.Title)
				assert.Equal(t, ttt.wantColor, note.Color)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestReplaceNote(t *testing.T) {
	ctx := context.Background()

	t.Run("trims title and content before persisting", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(storedNote("user-1"), nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.Title == "new title" && n.Content == "new content"
		})).Return(nil).Once()

		uc := app.NewNoteUseCase(repo)
		note, err := uc.ReplaceNote(ctx, "user-1", "note-1", "  new title  ", "\tnew content\n")

		require.NoError(t, err)
		assert.Equal(t, "new title", note.Title)
		assert.Equal(t, "new content", note.Content)
		repo.AssertExpectations(t)
	})

	t.Run("whitespace-only title rejected after trim", func(t *testing.T) {
		repo := new(mockNoteRepository)

		uc := app.NewNoteUseCase(repo)
		note, err := uc.ReplaceNote(ctx, "user-1", "note-1", "   ", "content")

		require.ErrorIs(t, err, app.ErrTitleContentRequired)
		assert.Nil(t, note)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("whitespace-only content rejected after trim", func(t *testing.T) {
		repo := new(mockNoteRepository)

		uc := app.NewNoteUseCase(repo)
		note, err := uc.ReplaceNote(ctx, "user-1", "note-1", "title", " \n ")

		require.ErrorIs(t, err, app.ErrTitleContentRequired)
		assert.Nil(t, note)
	})

	t.Run("note owned by someone else is not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-2").Return(nil, entities.ErrNoteNotFound).Once()

		uc := app.NewNoteUseCase(repo)
		note, err := uc.ReplaceNote(ctx, "user-2", "note-1", "title", "content")

		require.ErrorIs(t, err, app.ErrNotFound)
		assert.Nil(t, note)
		repo.AssertNotCalled(t, "Update")
	})
}

func TestPatchNote(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("applies only provided fields", func(t *testing.T) {
		repo := new(mockNoteRepository)
		existing := storedNote("user-1")
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(existing, nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.Title == "patched" && n.Content == "<p>milk</p>"
		})).Return(nil).Once()

		uc := app.NewNoteUseCase(repo)
		note, err := uc.PatchNote(ctx, "user-1", "note-1", api.NotePatch{Title: strPtr("patched")})

		require.NoError(t, err)
		assert.Equal(t, "patched", note.Title)
		assert.Equal(t, "<p>milk</p>", note.Content)
		repo.AssertExpectations(t)
	})

	t.Run("explicit false for favorite is applied", func(t *testing.T) {
		repo := new(mockNoteRepository)
		existing := storedNote("user-1")
		existing.IsFavorite = true
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(existing, nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return !n.IsFavorite
		})).Return(nil).Once()

		uc := app.NewNoteUseCase(repo)
		note, err := uc.PatchNote(ctx, "user-1", "note-1", api.NotePatch{IsFavorite: boolPtr(false)})

		require.NoError(t, err)
		assert.False(t, note.IsFavorite)
		repo.AssertExpectations(t)
	})

	t.Run("content markup is preserved verbatim", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(storedNote("user-1"), nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.Content == "  <b>bold</b>  "
		})).Return(nil).Once()

		uc := app.NewNoteUseCase(repo)
		note, err := uc.PatchNote(ctx, "user-1", "note-1", api.NotePatch{Content: strPtr("  <b>bold</b>  ")})

		require.NoError(t, err)
		assert.Equal(t, "  <b>bold</b>  ", note.Content)
		repo.AssertExpectations(t)
	})

	t.Run("foreign note is not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-2").Return(nil, entities.ErrNoteNotFound).Once()

		uc := app.NewNoteUseCase(repo)
		note, err := uc.PatchNote(ctx, "user-2", "note-1", api.NotePatch{IsFavorite: boolPtr(true)})

		require.ErrorIs(t, err, app.ErrNotFound)
		assert.Nil(t, note)
		repo.AssertNotCalled(t, "Update")
	})
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes owned note", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(storedNote("user-1"), nil).Once()
		repo.On("Delete", mock.Anything, "note-1", "user-1").Return(nil).Once()

		uc := app.NewNoteUseCase(repo)
		err := uc.DeleteNote(ctx, "user-1", "note-1")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("second delete is not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(nil, entities.ErrNoteNotFound).Once()

		uc := app.NewNoteUseCase(repo)
		err := uc.DeleteNote(ctx, "user-1", "note-1")

		require.ErrorIs(t, err, app.ErrNotFound)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("storage error is wrapped", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("GetByID", mock.Anything, "note-1", "user-1").Return(storedNote("user-1"), nil).Once()
		repo.On("Delete", mock.Anything, "note-1", "user-1").Return(errStorageFailure).Once()

		uc := app.NewNoteUseCase(repo)
		err := uc.DeleteNote(ctx, "user-1", "note-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, errStorageFailure)
	})
}
