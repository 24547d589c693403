package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"memopad/internal/auth/domain/entities"
	"memopad/internal/auth/ports/api"
	"memopad/internal/auth/ports/repositories"
	"memopad/pkg/logger"
)

const (
	methodGetProfile     = "GetProfile"
	msgGettingProfile    = "getting user profile"
	msgErrFindingProfile = "failed to find user profile"
	errCtxGettingProfile = "getting user profile"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает новый экземпляр сервиса профиля пользователя.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{userRepo: userRepo}
}

// GetProfile возвращает профиль пользователя по его ID.
func (u *UserUseCaseImpl) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("userID", userID))
	log.Debug(ctx, msgGettingProfile)

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGettingProfile, err)
	}

	return user, nil
}
