package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"memopad/pkg/logger"
)

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		reqCtx := RequestContext(ctx)
		start := time.Now()
		path := ctx.Path()
		method := ctx.Method()

		log := logger.Log(reqCtx).With(
			zap.String("path", path),
			zap.String("method", method),
			zap.String("ip", ctx.IP()),
		)

		log.Info(reqCtx, "Request started")

		err := ctx.Next()

		latency := time.Since(start)
		status := ctx.Response().StatusCode()

		logFields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}

		if err != nil {
			log.Error(reqCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(reqCtx, "Request completed", logFields...)
		return nil
	}
}
