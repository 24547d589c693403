// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"memopad/pkg/logger"
)

// Ключи для Locals.
const (
	LocalsRequestContext = "requestContext"
	LocalsUserID         = "userID"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestContextMiddleware создает промежуточное ПО, формирующее
// контекст запроса: request_id для логирования и таймаут, ограничивающий
// каждый вызов хранилища временем обработки запроса.
func NewRequestContextMiddleware(timeout time.Duration) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		reqCtx := logger.NewRequestIDContext(ctx.Context(), requestID)

		var cancel context.CancelFunc
		if timeout > 0 {
			reqCtx, cancel = context.WithTimeout(reqCtx, timeout)
			defer cancel()
		}

		ctx.Locals(LocalsRequestContext, reqCtx)
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}

// RequestContext извлекает контекст запроса из Locals.
func RequestContext(ctx fiber.Ctx) context.Context {
	if reqCtx, ok := ctx.Locals(LocalsRequestContext).(context.Context); ok {
		return reqCtx
	}
	return ctx.Context()
}

// UserID извлекает идентификатор аутентифицированного пользователя.
func UserID(ctx fiber.Ctx) (string, bool) {
	id, ok := ctx.Locals(LocalsUserID).(string)
	return id, ok && id != ""
}
