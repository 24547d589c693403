package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memopad/internal/auth/app"
	"memopad/internal/auth/domain/entities"
	"memopad/internal/auth/domain/services"
)

var errDatabaseConnection = errors.New("database connection error")

type authMocks struct {
	userRepo    *mockUserRepository
	tokenRepo   *mockTokenRepository
	passwordSvc *mockPasswordService
	tokenSvc    *mockTokenService
}

func newAuthMocks() *authMocks {
	return &authMocks{
		userRepo:    new(mockUserRepository),
		tokenRepo:   new(mockTokenRepository),
		passwordSvc: new(mockPasswordService),
		tokenSvc:    new(mockTokenService),
	}
}

func (m *authMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.userRepo.AssertExpectations(t)
	m.tokenRepo.AssertExpectations(t)
	m.passwordSvc.AssertExpectations(t)
	m.tokenSvc.AssertExpectations(t)
}

func (m *authMocks) expectTokenPair(userID, username string) {
	now := time.Now()
	m.tokenSvc.On("GenerateAccessToken", mock.Anything, userID, username).
		Return("access-token", now.Add(15*time.Minute), nil).Once()
	m.tokenSvc.On("GenerateRefreshToken", mock.Anything, userID).
		Return("refresh-token", now.Add(24*time.Hour), nil).Once()
	m.tokenRepo.On("StoreRefreshToken", mock.Anything, mock.MatchedBy(func(t *services.RefreshToken) bool {
		return t.UserID == userID && t.Token == "refresh-token" && !t.IsRevoked
	})).Return(nil).Once()
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		email       string
		username    string
		password    string
		setupMocks  func(m *authMocks)
		expectedErr error
	}{
		{
			name:     "success",
			email:    "new@example.com",
			username: "newuser",
			password: "password1",
			setupMocks: func(m *authMocks) {
				m.userRepo.On("FindByEmail", mock.Anything, "new@example.com").
					Return(nil, entities.ErrUserNotFound).Once()
				m.passwordSvc.On("Hash", mock.Anything, "password1").Return("hashed", nil).Once()
				m.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == "new@example.com" && u.PasswordHash == "hashed"
				})).Return(&entities.User{ID: "user-1", Email: "new@example.com", Username: "newuser"}, nil).Once()
				m.expectTokenPair("user-1", "newuser")
			},
		},
		{
			name:        "invalid email format",
			email:       "not-an-email",
			username:    "newuser",
			password:    "password1",
			setupMocks:  func(*authMocks) {},
			expectedErr: entities.ErrInvalidEmail,
		},
		{
			name:        "empty username",
			email:       "new@example.com",
			username:    "",
			password:    "password1",
			setupMocks:  func(*authMocks) {},
			expectedErr: entities.ErrEmptyUsername,
		},
		{
			name:        "password too short",
			email:       "new@example.com",
			username:    "newuser",
			password:    "pass1",
			setupMocks:  func(*authMocks) {},
			expectedErr: entities.ErrPasswordTooShort,
		},
		{
			name:        "password without digits",
			email:       "new@example.com",
			username:    "newuser",
			password:    "passwords",
			setupMocks:  func(*authMocks) {},
			expectedErr: entities.ErrPasswordTooWeak,
		},
		{
			name:     "duplicate email",
			email:    "taken@example.com",
			username: "newuser",
			password: "password1",
			setupMocks: func(m *authMocks) {
				m.userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
					Return(&entities.User{ID: "user-2", Email: "taken@example.com"}, nil).Once()
			},
			expectedErr: services.ErrEmailAlreadyExists,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			m := newAuthMocks()
			ttt.setupMocks(m)

			uc := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc)
			pair, err := uc.Register(ctx, ttt.email, ttt.username, ttt.password)

			if ttt.expectedErr != nil {
				require.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, pair)
				assert.Equal(t, "user-1", pair.UserID)
				assert.Equal(t, "access-token", pair.AccessToken)
				assert.Equal(t, "refresh-token", pair.RefreshToken)
			}

			m.assertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	user := &entities.User{
		ID:           "user-1",
		Email:        "user@example.com",
		Username:     "user",
		PasswordHash: "hashed",
	}

	t.Run("success", func(t *testing.T) {
		m := newAuthMocks()
		m.userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()
		m.passwordSvc.On("Verify", mock.Anything, "password1", "hashed").Return(true, nil).Once()
		m.expectTokenPair("user-1", "user")

		uc := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc)
		pair, err := uc.Login(ctx, user.Email, "password1")

		require.NoError(t, err)
		assert.Equal(t, "user-1", pair.UserID)
		m.assertExpectations(t)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		m := newAuthMocks()
		m.userRepo.On("FindByEmail", mock.Anything, "missing@example.com").
			Return(nil, entities.ErrUserNotFound).Once()
		m.userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()
		m.passwordSvc.On("Verify", mock.Anything, "wrongpass1", "hashed").Return(false, nil).Once()

		uc := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc)

		_, errMissing := uc.Login(ctx, "missing@example.com", "password1")
		_, errWrong := uc.Login(ctx, user.Email, "wrongpass1")

		require.ErrorIs(t, errMissing, services.ErrInvalidCredentials)
		require.ErrorIs(t, errWrong, services.ErrInvalidCredentials)
		m.assertExpectations(t)
	})

	t.Run("database error is not invalid credentials", func(t *testing.T) {
		m := newAuthMocks()
		m.userRepo.On("FindByEmail", mock.Anything, user.Email).
			Return(nil, errDatabaseConnection).Once()

		uc := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc)
		pair, err := uc.Login(ctx, user.Email, "password1")

		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Nil(t, pair)
		m.assertExpectations(t)
	})
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()

	user := &entities.User{ID: "user-1", Username: "user"}
	stored := &services.RefreshToken{
		UserID:    "user-1",
		Token:     "old-refresh",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	t.Run("rotates the pair and revokes the old token", func(t *testing.T) {
		m := newAuthMocks()
		m.tokenRepo.On("FindByToken", mock.Anything, "old-refresh").Return(stored, nil).Once()
		m.userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()
		m.tokenRepo.On("RevokeToken", mock.Anything, "old-refresh").Return(nil).Once()
		m.expectTokenPair("user-1", "user")

		uc := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc)
		pair, err := uc.RefreshTokens(ctx, "old-refresh")

		require.NoError(t, err)
		assert.Equal(t, "refresh-token", pair.RefreshToken)
		m.assertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		m := newAuthMocks()
		m.tokenRepo.On("FindByToken", mock.Anything, "missing").
			Return(nil, errors.New("refresh token not found")).Once()

		uc := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc)
		pair, err := uc.RefreshTokens(ctx, "missing")

		require.ErrorIs(t, err, services.ErrInvalidRefreshToken)
		assert.Nil(t, pair)
		m.assertExpectations(t)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		m := newAuthMocks()
		revoked := &services.RefreshToken{UserID: "user-1", Token: "revoked", IsRevoked: true}
		m.tokenRepo.On("FindByToken", mock.Anything, "revoked").Return(revoked, nil).Once()

		uc := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc)
		pair, err := uc.RefreshTokens(ctx, "revoked")

		require.ErrorIs(t, err, services.ErrRevokedRefreshToken)
		assert.Nil(t, pair)
		m.assertExpectations(t)
	})
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes all user tokens", func(t *testing.T) {
		m := newAuthMocks()
		m.tokenRepo.On("RevokeAllUserTokens", mock.Anything, "user-1").Return(nil).Once()

		uc := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc)
		err := uc.SignOut(ctx, "user-1")

		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("storage error is propagated", func(t *testing.T) {
		m := newAuthMocks()
		m.tokenRepo.On("RevokeAllUserTokens", mock.Anything, "user-1").
			Return(errDatabaseConnection).Once()

		uc := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc)
		err := uc.SignOut(ctx, "user-1")

		require.ErrorIs(t, err, errDatabaseConnection)
		m.assertExpectations(t)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the user profile", func(t *testing.T) {
		m := newAuthMocks()
		user := &entities.User{ID: "user-1", Email: "user@example.com", Username: "user"}
		m.userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()

		uc := app.NewUserUseCase(m.userRepo)
		profile, err := uc.GetProfile(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, user, profile)
		m.assertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		m := newAuthMocks()
		m.userRepo.On("FindByID", mock.Anything, "missing").
			Return(nil, entities.ErrUserNotFound).Once()

		uc := app.NewUserUseCase(m.userRepo)
		profile, err := uc.GetProfile(ctx, "missing")

		require.ErrorIs(t, err, entities.ErrUserNotFound)
		assert.Nil(t, profile)
		m.assertExpectations(t)
	})
}
