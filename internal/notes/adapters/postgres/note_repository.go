// Package postgres provides the PostgreSQL implementation of the note repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"memopad/internal/notes/domain/entities"
	"memopad/internal/notes/ports/repositories"
	"memopad/pkg/logger"
)

// PgxPoolInterface описывает операции пула, используемые репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку. Идентификатор и время создания
// назначает база данных.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	var created entities.Note
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, content, color)
         VALUES ($1, $2, $3, $4)
         RETURNING id, user_id, title, content, color, is_favorite, created_at`,
		note.UserID, note.Title, note.Content, note.Color,
	).Scan(&created.ID, &created.UserID, &created.Title, &created.Content,
		&created.Color, &created.IsFavorite, &created.CreatedAt)

	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return &created, nil
}

// GetByID получает заметку по ID и ID владельца. Чужая или
// несуществующая заметка неразличимы: обе дают ErrNoteNotFound.
func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID), zap.String("userID", userID))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, content, color, is_favorite, created_at
         FROM notes
         WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	).Scan(&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.Color, &note.IsFavorite, &note.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// ListByUserID получает все заметки пользователя, новые первыми.
func (r *NoteRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByUserID"))
	log.Debug(ctx, "listing notes", zap.String("userID", userID))

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, content, color, is_favorite, created_at
         FROM notes
         WHERE user_id = $1
         ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content,
			&note.Color, &note.IsFavorite, &note.CreatedAt)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Update обновляет изменяемые поля существующей заметки. ID, владелец
// и created_at не изменяются.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET title = $1, content = $2, color = $3, is_favorite = $4
         WHERE id = $5 AND user_id = $6`,
		note.Title, note.Content, note.Color, note.IsFavorite, note.ID, note.UserID,
	)
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFound
	}

	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFound
	}

	return nil
}
