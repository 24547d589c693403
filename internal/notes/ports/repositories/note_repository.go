// Package repositories defines repository interfaces for the notes subsystem.
package repositories

import (
	"context"

	"memopad/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
// Все операции чтения и записи ограничены владельцем: noteID без
// соответствующего userID ведет себя как несуществующий.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)

	GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error)

	ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error)

	Update(ctx context.Context, note *entities.Note) error

	Delete(ctx context.Context, noteID, userID string) error
}
