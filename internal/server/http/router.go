// Package http содержит компоненты для HTTP сервера.
package http

import (
	"time"

	"github.com/gofiber/fiber/v3"

	authapi "memopad/internal/auth/ports/api"
	svc "memopad/internal/auth/ports/services"
	notesapi "memopad/internal/notes/ports/api"
	"memopad/internal/server/http/auth"
	"memopad/internal/server/http/middleware"
	"memopad/internal/server/http/notes"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	requestTimeout time.Duration,
	tokenSvc svc.TokenService,
	authUseCase authapi.AuthUseCase,
	userUseCase authapi.UserUseCase,
	notesUseCase notesapi.NoteUseCase,
) {
	authHandler := auth.NewHandler(authUseCase, userUseCase)
	notesHandler := notes.NewHandler(notesUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestContextMiddleware(requestTimeout))
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	sessionGuard := middleware.NewAuthMiddleware(tokenSvc)

	// Auth routes (публичные).
	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Get("/profile", authHandler.GetProfile, sessionGuard)

	// Выход из сессии (требует авторизации).
	sessionRoutes := app.Group("/session")
	sessionRoutes.Use(sessionGuard)
	sessionRoutes.Post("/signout", authHandler.SignOut)

	// Маршруты заметок (требуют авторизации).
	notesRoutes := app.Group("/notes")
	notesRoutes.Use(sessionGuard)
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Put("/:note_id", notesHandler.ReplaceNote)
	notesRoutes.Patch("/:note_id", notesHandler.PatchNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
