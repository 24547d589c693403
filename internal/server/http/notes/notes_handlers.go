// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"memopad/internal/notes/app"
	"memopad/internal/notes/ports/api"
	"memopad/internal/server/http/dto"
	"memopad/internal/server/http/middleware"
	"memopad/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListNotes   = "handling list notes request"
	LogHandlerCreateNote  = "handling create note request"
	LogHandlerReplaceNote = "handling replace note request"
	LogHandlerPatchNote   = "handling patch note request"
	LogHandlerDeleteNote  = "handling delete note request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgNotAuthenticated   = "not authenticated"
	ErrMsgInternal           = "internal server error"
	MsgNoteDeleted           = "note deleted successfully"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notesUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notesUseCase api.NoteUseCase) *Handler {
	return &Handler{notesUseCase: notesUseCase}
}

// ListNotes возвращает все заметки пользователя, новые первыми.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(reqCtx, LogHandlerListNotes)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgNotAuthenticated,
		})
	}

	notes, err := h.notesUseCase.ListNotes(reqCtx, userID)
	if err != nil {
		log.Error(reqCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(notes); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(reqCtx, LogHandlerCreateNote)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgNotAuthenticated,
		})
	}

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		})
	}

	note, err := h.notesUseCase.CreateNote(reqCtx, userID, req.Title, req.Content, req.Color)
	if err != nil {
		log.Debug(reqCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ReplaceNote обрабатывает полную замену заголовка и содержимого заметки.
func (h *Handler) ReplaceNote(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ReplaceNote"))
	log.Debug(reqCtx, LogHandlerReplaceNote)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgNotAuthenticated,
		})
	}

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Debug(reqCtx, ErrMsgInvalidNoteID)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		})
	}

	var req dto.ReplaceNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		})
	}

	note, err := h.notesUseCase.ReplaceNote(reqCtx, userID, noteID, req.Title, req.Content)
	if err != nil {
		log.Debug(reqCtx, "failed to replace note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// PatchNote обрабатывает частичное обновление заметки: применяются
// только переданные поля, включая явный isFavorite=false.
func (h *Handler) PatchNote(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.PatchNote"))
	log.Debug(reqCtx, LogHandlerPatchNote)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgNotAuthenticated,
		})
	}

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Debug(reqCtx, ErrMsgInvalidNoteID)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		})
	}

	var req dto.PatchNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		})
	}

	note, err := h.notesUseCase.PatchNote(reqCtx, userID, noteID, api.NotePatch{
		Title:      req.Title,
		Content:    req.Content,
		Color:      req.Color,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		log.Debug(reqCtx, "failed to patch note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(reqCtx, LogHandlerDeleteNote)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrMsgNotAuthenticated,
		})
	}

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Debug(reqCtx, ErrMsgInvalidNoteID)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		})
	}

	if err := h.notesUseCase.DeleteNote(reqCtx, userID, noteID); err != nil {
		log.Debug(reqCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.MessageResponse{Message: MsgNoteDeleted}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError сопоставляет доменные ошибки с HTTP-статусами.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrEmptyNote):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": app.ErrEmptyNote.Error(),
		})
	case errors.Is(err, app.ErrTitleContentRequired):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": app.ErrTitleContentRequired.Error(),
		})
	case errors.Is(err, app.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": app.ErrNotFound.Error(),
		})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgInternal,
		})
	}
}
