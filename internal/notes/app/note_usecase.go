// Package app implements application business logic for the notes subsystem.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"memopad/internal/notes/domain/entities"
	"memopad/internal/notes/ports/api"
	"memopad/internal/notes/ports/repositories"
	"memopad/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	// ErrNotFound возвращается, когда заметка отсутствует или принадлежит
	// другому пользователю. Эти случаи неразличимы для вызывающего.
	ErrNotFound = errors.New("note not found")
	// ErrEmptyNote возвращается при создании заметки без заголовка и содержимого.
	ErrEmptyNote = errors.New("title or content is required")
	// ErrTitleContentRequired возвращается при полном обновлении с пустым
	// (после обрезки пробелов) заголовком или содержимым.
	ErrTitleContentRequired = errors.New("title and content are required")
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// ListNotes возвращает все заметки пользователя, новые первыми.
// Пустой список - валидный результат, не ошибка.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID string) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// CreateNote создает новую заметку для пользователя. Требуется непустой
// заголовок или содержимое; пустые поля получают значения по умолчанию.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID, title, content, color string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "CreateNote"), zap.String("userID", userID))

	if title == "" && content == "" {
		log.Debug(ctx, "empty note rejected")
		return nil, ErrEmptyNote
	}

	note := entities.NewNote(userID, title, content, color)
	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Info(ctx, "note created", zap.String("noteID", created.ID))
	return created, nil
}

// ReplaceNote полностью заменяет заголовок и содержимое заметки.
// Оба поля обязательны после обрезки пробелов; содержимое здесь
// трактуется как простой текст и обрезается, в отличие от PatchNote.
func (uc *NoteUseCase) ReplaceNote(ctx context.Context, userID, noteID, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "ReplaceNote"), zap.String("noteID", noteID))

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		log.Debug(ctx, "replace with empty title or content rejected")
		return nil, ErrTitleContentRequired
	}

	note, err := uc.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// PatchNote применяет частичное обновление: меняются только переданные
// поля. Явный false для isFavorite применяется так же, как true.
// Содержимое сохраняется дословно, разметка не трогается.
func (uc *NoteUseCase) PatchNote(ctx context.Context, userID, noteID string, patch api.NotePatch) (*entities.Note, error) {
	note, err := uc.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Color != nil {
		note.Color = *patch.Color
	}
	if patch.IsFavorite != nil {
		note.IsFavorite = *patch.IsFavorite
	}

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// DeleteNote удаляет заметку. Повторное удаление дает ErrNotFound.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DeleteNote"), zap.String("noteID", noteID))

	if _, err := uc.ownedNote(ctx, userID, noteID); err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, noteID, userID); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	log.Info(ctx, "note deleted", zap.String("userID", userID))
	return nil
}

// ownedNote - единая проверка авторизации: загружает заметку в границах
// владельца ДО любой мутации. Выполняется каждой пишущей операцией.
func (uc *NoteUseCase) ownedNote(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}
