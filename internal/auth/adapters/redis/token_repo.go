// Package redis содержит реализацию хранилища refresh-токенов на Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"memopad/internal/auth/domain/services"
	"memopad/internal/auth/ports/repositories"
	"memopad/internal/config"
	"memopad/pkg/logger"
)

// Константы для ключей и сообщений.
const (
	tokenKeyPrefix    = "refresh_token:"
	userTokensPrefix  = "user_tokens:"
	ErrFailedToStore  = "failed to store refresh token"
	ErrFailedToFind   = "failed to find refresh token"
	ErrFailedToRevoke = "failed to revoke refresh token"
)

// ErrTokenNotFound возвращается, когда refresh-токен отсутствует в хранилище.
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenRepository реализует repositories.TokenRepository поверх Redis.
// Токены живут с TTL до истечения срока действия, отдельное множество
// на пользователя позволяет отозвать все его сессии разом.
type TokenRepository struct {
	client *redis.Client
}

// NewTokenRepository создает хранилище токенов и проверяет соединение.
func NewTokenRepository(ctx context.Context, cfg *config.RedisConfig) (*TokenRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddress(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdle,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &TokenRepository{client: client}, nil
}

// NewTokenRepositoryWithClient создает хранилище поверх готового клиента.
func NewTokenRepositoryWithClient(client *redis.Client) repositories.TokenRepository {
	return &TokenRepository{client: client}
}

// StoreRefreshToken сохраняет refresh-токен с TTL до момента истечения.
func (r *TokenRepository) StoreRefreshToken(ctx context.Context, token *services.RefreshToken) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "StoreRefreshToken"))

	payload, err := json.Marshal(token)
	if err != nil {
		log.Error(ctx, ErrFailedToStore, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToStore, err)
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%s: token already expired", ErrFailedToStore)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, tokenKeyPrefix+token.Token, payload, ttl)
	pipe.SAdd(ctx, userTokensPrefix+token.UserID, token.Token)
	pipe.Expire(ctx, userTokensPrefix+token.UserID, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error(ctx, ErrFailedToStore, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToStore, err)
	}

	return nil
}

// FindByToken находит refresh-токен по его значению.
func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*services.RefreshToken, error) {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "FindByToken"))

	payload, err := r.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debug(ctx, "refresh token not found")
			return nil, ErrTokenNotFound
		}
		log.Error(ctx, ErrFailedToFind, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedToFind, err)
	}

	var stored services.RefreshToken
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		log.Error(ctx, ErrFailedToFind, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedToFind, err)
	}

	return &stored, nil
}

// RevokeToken помечает refresh-токен отозванным, сохраняя его TTL.
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "RevokeToken"))

	stored, err := r.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	stored.IsRevoked = true

	payload, err := json.Marshal(stored)
	if err != nil {
		log.Error(ctx, ErrFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToRevoke, err)
	}

	if err := r.client.Set(ctx, tokenKeyPrefix+token, payload, redis.KeepTTL).Err(); err != nil {
		log.Error(ctx, ErrFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToRevoke, err)
	}

	return nil
}

// RevokeAllUserTokens отзывает все refresh-токены пользователя.
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "RevokeAllUserTokens"))

	tokens, err := r.client.SMembers(ctx, userTokensPrefix+userID).Result()
	if err != nil {
		log.Error(ctx, ErrFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToRevoke, err)
	}

	for _, token := range tokens {
		if err := r.RevokeToken(ctx, token); err != nil && !errors.Is(err, ErrTokenNotFound) {
			return err
		}
	}

	if err := r.client.Del(ctx, userTokensPrefix+userID).Err(); err != nil {
		log.Error(ctx, ErrFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToRevoke, err)
	}

	log.Debug(ctx, "revoked user tokens", zap.Int("count", len(tokens)))
	return nil
}

// Close закрывает соединение с Redis.
func (r *TokenRepository) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	return nil
}
