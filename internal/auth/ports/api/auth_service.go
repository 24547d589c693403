// Package api defines the inbound ports of the auth subsystem.
package api

import (
	"context"

	"memopad/internal/auth/domain/entities"
	"memopad/internal/auth/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, email, username, password string) (*services.TokenPair, error)

	Login(ctx context.Context, email, password string) (*services.TokenPair, error)

	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)

	SignOut(ctx context.Context, userID string) error
}

// UserUseCase определяет порт для операций с профилем пользователя.
type UserUseCase interface {
	GetProfile(ctx context.Context, userID string) (*entities.User, error)
}
