// Package api defines the inbound ports of the notes subsystem.
package api

import (
	"context"

	"memopad/internal/notes/domain/entities"
)

// NotePatch описывает частичное обновление заметки. Нулевой указатель
// означает "поле не передано"; явный false для IsFavorite применяется.
type NotePatch struct {
	Title      *string
	Content    *string
	Color      *string
	IsFavorite *bool
}

// NoteUseCase определяет основной порт для операций с заметками.
type NoteUseCase interface {
	ListNotes(ctx context.Context, userID string) ([]*entities.Note, error)

	CreateNote(ctx context.Context, userID, title, content, color string) (*entities.Note, error)

	ReplaceNote(ctx context.Context, userID, noteID, title, content string) (*entities.Note, error)

	PatchNote(ctx context.Context, userID, noteID string, patch NotePatch) (*entities.Note, error)

	DeleteNote(ctx context.Context, userID, noteID string) error
}
