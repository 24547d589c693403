// Package app implements application business logic for the auth subsystem.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"memopad/internal/auth/domain/entities"
	"memopad/internal/auth/domain/services"
	"memopad/internal/auth/ports/api"
	"memopad/internal/auth/ports/repositories"
	svc "memopad/internal/auth/ports/services"
	"memopad/pkg/logger"
)

const (
	methodRegister       = "Register"
	methodLogin          = "Login"
	methodRefreshTokens  = "RefreshTokens"
	methodSignOut        = "SignOut"
	methodGenerateTokens = "generateTokenPair"

	msgStartRegistration    = "starting user registration"
	msgInvalidEmailFormat   = "invalid email format"
	msgEmptyUsername        = "empty username provided"
	msgInvalidPassword      = "invalid password"
	msgEmailExists          = "user with this email already exists"
	msgUserRegistered       = "user registered successfully"
	msgLoginAttempt         = "login attempt"
	msgLoginNonExistent     = "login attempt with non-existent email"
	msgInvalidPasswordAuth  = "invalid password provided"
	msgUserLoggedIn         = "user logged in successfully"
	msgRefreshingTokens     = "refreshing tokens"
	msgRevokedTokenAttempt  = "attempt to use revoked token"
	msgTokensRefreshed      = "tokens refreshed successfully"
	msgProcessingSignOut    = "processing sign-out request"
	msgUserSignedOut        = "user signed out, refresh tokens revoked"
	msgTokenPairGenerated   = "token pair generated successfully"
	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrGenerateTokens    = "failed to generate tokens"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrRevokingTokens    = "failed to revoke user tokens"
	msgErrStoreRefreshToken = "failed to store refresh token"

	errCtxValidatingEmail        = "validating email"
	errCtxValidatingUsername     = "validating username"
	errCtxValidatingPassword     = "validating password"
	errCtxCheckingUser           = "checking existing user"
	errCtxEmailRegistered        = "email already registered"
	errCtxHashingPassword        = "hashing password"
	errCtxCreatingUser           = "creating user"
	errCtxGeneratingTokens       = "generating tokens"
	errCtxInvalidCredentials     = "invalid credentials"
	errCtxFindingUser            = "finding user"
	errCtxVerifyingPassword      = "verifying password"
	errCtxFindingRefreshToken    = "finding refresh token"
	errCtxTokenRevoked           = "token revoked"
	errCtxRevokingOldToken       = "revoking old token"
	errCtxGeneratingNewTokens    = "generating new tokens"
	errCtxRevokingUserTokens     = "revoking user tokens"
	errCtxGeneratingAccessToken  = "generating access token"
	errCtxGeneratingRefreshToken = "generating refresh token"
	errCtxStoringRefreshToken    = "storing refresh token"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	tokenRepo   repositories.TokenRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя с предоставленными учетными данными.
func (a *AuthUseCaseImpl) Register(ctx context.Context, email, username, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if username == "" {
		log.Debug(ctx, msgEmptyUsername)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}
	if err := validatePassword(password); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	tokenPair, err := a.generateTokenPair(ctx, createdUser)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	return tokenPair, nil
}

// Login аутентифицирует пользователя по email и паролю. Несуществующий email
// и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	return tokenPair, nil
}

// RefreshTokens обновляет пару токенов, отзывая старый refresh-токен.
func (a *AuthUseCaseImpl) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefreshTokens))
	log.Debug(ctx, msgRefreshingTokens)

	token, err := a.tokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		log.Debug(ctx, "invalid refresh token", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingRefreshToken, services.ErrInvalidRefreshToken)
	}

	log = log.With(zap.String("userID", token.UserID))

	if token.IsRevoked {
		log.Debug(ctx, msgRevokedTokenAttempt)
		return nil, fmt.Errorf("%s: %w", errCtxTokenRevoked, services.ErrRevokedRefreshToken)
	}

	user, err := a.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		log.Error(ctx, "failed to find user for refresh token", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := a.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		log.Error(ctx, "failed to revoke old token", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxRevokingOldToken, err)
	}

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingNewTokens, err)
	}

	log.Info(ctx, msgTokensRefreshed)
	return tokenPair, nil
}

// SignOut отзывает все refresh-токены пользователя. Access токен остается
// действительным до истечения своего TTL.
func (a *AuthUseCaseImpl) SignOut(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodSignOut), zap.String("userID", userID))
	log.Debug(ctx, msgProcessingSignOut)

	if err := a.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		log.Error(ctx, msgErrRevokingTokens, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingUserTokens, err)
	}

	log.Info(ctx, msgUserSignedOut)
	return nil
}

// Вспомогательная функция для генерации пары токенов.
func (a *AuthUseCaseImpl) generateTokenPair(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateTokens),
		zap.String("userID", user.ID),
	)

	accessToken, accessExpires, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingAccessToken, services.ErrTokenGenerationFailed)
	}

	refreshToken, refreshExpires, err := a.tokenSvc.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingRefreshToken, services.ErrTokenGenerationFailed)
	}

	if err := a.tokenRepo.StoreRefreshToken(ctx, &services.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: refreshExpires,
		IsRevoked: false,
	}); err != nil {
		log.Error(ctx, msgErrStoreRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxStoringRefreshToken, err)
	}

	log.Debug(ctx, msgTokenPairGenerated)

	return &services.TokenPair{
		UserID:       user.ID,
		Username:     user.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpires,
	}, nil
}

// Валидация email.
func validateEmail(email string) error {
	if email == "" {
		return entities.ErrInvalidEmail
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}

	return nil
}

// Валидация пароля.
func validatePassword(password string) error {
	if len(password) < services.MinPasswordLength {
		return entities.ErrPasswordTooShort
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`\d`).MatchString(password)

	if !hasLetter || !hasDigit {
		return entities.ErrPasswordTooWeak
	}

	return nil
}
