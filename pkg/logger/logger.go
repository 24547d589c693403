// Package logger предоставляет обертку над zap с поддержкой контекста.
package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment определяет режим работы логгера.
type Environment string

// Поддерживаемые режимы работы.
const (
	Development Environment = "development"
	Production  Environment = "production"
)

// RequestID - имя поля с идентификатором запроса.
const RequestID = "request_id"

// Logger обертывает zap.Logger и добавляет request_id из контекста.
type Logger struct {
	l *zap.Logger
}

// NewLogger создает новый logger для указанного окружения и уровня.
// Пустой level означает уровень по умолчанию для окружения.
func NewLogger(env Environment, level string) (*Logger, error) {
	var config zap.Config
	if env == Development {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		config.Level = zap.NewAtomicLevelAt(parsed)
	}

	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("building zap logger: %w", err)
	}

	return &Logger{l: zapLogger}, nil
}

// With возвращает копию логгера с добавленными полями.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Info(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Warn(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Error(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Debug(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Fatal(msg, addRequestID(ctx, fields)...)
}

// Sync сбрасывает буферизированные записи.
func (l *Logger) Sync() error {
	if err := l.l.Sync(); err != nil {
		return fmt.Errorf("syncing logger: %w", err)
	}
	return nil
}

// addRequestID добавляет request_id из контекста к полям записи.
func addRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if id, ok := GetRequestID(ctx); ok {
		return append(fields, zap.String(RequestID, id))
	}
	return fields
}
