// Package config содержит конфигурацию сервиса memopad.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"memopad/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "Loading memopad service configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_host", cfg.HTTP.Host),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.String("redis_address", cfg.Redis.GetAddress()))

	return &cfg, nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
