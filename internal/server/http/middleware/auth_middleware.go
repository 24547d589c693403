package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	svc "memopad/internal/auth/ports/services"
	"memopad/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

// NewAuthMiddleware создает сессионный барьер: каждый защищенный
// маршрут проходит проверку access токена ДО обращения к хранилищу.
func NewAuthMiddleware(tokenSvc svc.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		reqCtx := RequestContext(ctx)
		log := logger.Log(reqCtx).With(zap.String("middleware", "auth"))
		log.Debug(reqCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(reqCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorNoAuthHeader,
			})
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			log.Debug(reqCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorInvalidTokenFormat,
			})
		}

		userID, err := tokenSvc.ValidateAccessToken(reqCtx, token)
		if err != nil {
			log.Debug(reqCtx, ErrorInvalidToken, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorInvalidToken,
			})
		}

		ctx.Locals(LocalsUserID, userID)

		return ctx.Next()
	}
}
