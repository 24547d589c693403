package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	authpg "memopad/internal/auth/adapters/postgres"
	authredis "memopad/internal/auth/adapters/redis"
	authservices "memopad/internal/auth/adapters/services"
	authapp "memopad/internal/auth/app"
	"memopad/internal/config"
	notespg "memopad/internal/notes/adapters/postgres"
	notesapp "memopad/internal/notes/app"
	httpServer "memopad/internal/server/http"
	"memopad/pkg/db/postgres"
	"memopad/pkg/logger"
	"memopad/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "MEMOPAD_LOGGER_MODE"
	EnvLoggerLevel = "MEMOPAD_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectDatabase      = "failed to connect to database"
	ErrApplyMigrations      = "failed to apply database migrations"
	ErrCreateTokenStore     = "failed to create refresh token store"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "memopad service started"
	LogServiceShutdownDone = "memopad service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitDatabase        = "initializing database connection"
	LogRunningMigrations   = "running database migrations"
	LogInitTokenStore      = "initializing refresh token store"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogRunningMigrations)
		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		// Хранилище refresh-токенов в Redis.
		log.Info(ctx, LogInitTokenStore)
		tokenRepo, err := authredis.NewTokenRepository(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateTokenStore, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		userRepo := authpg.NewUserRepository(database.Pool())
		noteRepo := notespg.NewNoteRepository(database.Pool())

		passwordSvc := authservices.NewBcrypt(cfg.JWT.BCryptCost)
		tokenSvc := authservices.NewJWT(cfg.JWT.SecretKey, cfg.JWT.GetAccessTokenTTL(), cfg.JWT.GetRefreshTokenTTL())

		authUseCase := authapp.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)
		userUseCase := authapp.NewUserUseCase(userRepo)
		notesUseCase := notesapp.NewNoteUseCase(noteRepo)

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(app, cfg.HTTP.RequestTimeout, tokenSvc, authUseCase, userUseCase, notesUseCase)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.Shutdown()
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, "closing refresh token store")
				return tokenRepo.Close()
			},
			// Закрытие пула соединений с базой данных.
			func(ctx context.Context) error {
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
