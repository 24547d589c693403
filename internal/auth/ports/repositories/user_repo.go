// Package repositories defines repository interfaces for the auth subsystem.
package repositories

import (
	"context"

	"memopad/internal/auth/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователем.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
