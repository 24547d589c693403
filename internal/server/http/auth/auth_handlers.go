// Package auth содержит HTTP-обработчики аутентификации.
package auth

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"memopad/internal/auth/domain/entities"
	"memopad/internal/auth/domain/services"
	"memopad/internal/auth/ports/api"
	"memopad/internal/server/http/dto"
	"memopad/internal/server/http/middleware"
	"memopad/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerRegister = "handling register request"
	LogHandlerLogin    = "handling login request"
	LogHandlerRefresh  = "handling refresh tokens request"
	LogHandlerSignOut  = "handling sign-out request"
	LogHandlerProfile  = "handling get profile request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInternal           = "internal server error"
	MsgSignedOut             = "logged out successfully"
)

// Handler обработчик HTTP-запросов аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Register"))
	log.Debug(reqCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		})
	}

	tokens, err := h.authUseCase.Register(reqCtx, req.Email, req.Username, req.Password)
	if err != nil {
		log.Debug(reqCtx, "registration failed", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(tokenResponse(tokens)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(reqCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		})
	}

	tokens, err := h.authUseCase.Login(reqCtx, req.Email, req.Password)
	if err != nil {
		log.Debug(reqCtx, "login failed", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(tokenResponse(tokens)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// RefreshTokens обрабатывает запрос на обновление пары токенов.
func (h *Handler) RefreshTokens(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.RefreshTokens"))
	log.Debug(reqCtx, LogHandlerRefresh)

	var req dto.RefreshRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		})
	}

	tokens, err := h.authUseCase.RefreshTokens(reqCtx, req.RefreshToken)
	if err != nil {
		log.Debug(reqCtx, "token refresh failed", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(tokenResponse(tokens)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// SignOut обрабатывает выход пользователя: отзывает его refresh-токены
// на стороне сервера и возвращает подтверждение.
func (h *Handler) SignOut(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.SignOut"))
	log.Debug(reqCtx, LogHandlerSignOut)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "not authenticated",
		})
	}

	if err := h.authUseCase.SignOut(reqCtx, userID); err != nil {
		log.Error(reqCtx, "sign-out failed", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.MessageResponse{Message: MsgSignedOut}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetProfile обрабатывает запрос профиля текущего пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetProfile"))
	log.Debug(reqCtx, LogHandlerProfile)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "not authenticated",
		})
	}

	user, err := h.userUseCase.GetProfile(reqCtx, userID)
	if err != nil {
		log.Error(reqCtx, "failed to get profile", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.UserProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// tokenResponse преобразует доменную пару токенов в DTO ответа.
func tokenResponse(tokens *services.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		UserID:       tokens.UserID,
		Username:     tokens.Username,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}
}

// handleError сопоставляет доменные ошибки с HTTP-статусами.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyUsername),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, entities.ErrPasswordTooWeak),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrEmailAlreadyExists):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": unwrapMessage(err),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": services.ErrInvalidCredentials.Error(),
		})
	case errors.Is(err, services.ErrInvalidRefreshToken),
		errors.Is(err, services.ErrRevokedRefreshToken):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": services.ErrInvalidRefreshToken.Error(),
		})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgInternal,
		})
	}
}

// unwrapMessage возвращает текст последней ошибки в цепочке.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
