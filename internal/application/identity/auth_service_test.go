package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	domain "github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/auth"
	"github.com/stockpile/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	svc     *AuthService
	users   *MockUserRepository
	jwt     *auth.JWTService
	revoked *auth.MemoryRevocationList
	user    *domain.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)

	user := &domain.User{Username: "alice", Name: "Alice", PasswordHash: hash, Status: true}
	user.ID = 11
	user.TenantID = uuid.New()

	users := new(MockUserRepository)
	users.On("RoleIDs", mock.Anything, int64(11)).Return([]int64{1}, nil).Maybe()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "stockpile-test",
	})
	registry := NewRegistry(newMemoryStore(), staticLoader(
		RoleEntry{ID: 1, Name: "admin", Permissions: []string{"brand:read", "unit:read"}},
	))
	revoked := auth.NewMemoryRevocationList()

	return &authFixture{
		svc:     NewAuthService(users, NewAuthorizer(registry, users), jwtService, revoked, zap.NewNop()),
		users:   users,
		jwt:     jwtService,
		revoked: revoked,
		user:    user,
	}
}

func errorCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues tokens with permissions", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByUsername", mock.Anything, "alice").Return(f.user, nil)

		result, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, []string{"brand:read", "unit:read"}, result.User.Permissions)
		assert.Equal(t, f.user.TenantID, result.User.TenantID)

		claims, err := f.jwt.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(11), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByUsername", mock.Anything, "bob").Return(nil, shared.ErrNotFound)

		_, err := f.svc.Login(ctx, LoginInput{Username: "bob", Password: "x"})
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByUsername", mock.Anything, "alice").Return(f.user, nil)

		_, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "nope"})
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(err))
	})

	t.Run("inactive account", func(t *testing.T) {
		f := newAuthFixture(t)
		f.user.Status = false
		f.users.On("FindByUsername", mock.Anything, "alice").Return(f.user, nil)

		_, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "s3cret-pass"})
		assert.Equal(t, "ACCOUNT_INACTIVE", errorCode(err))
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByUsername", mock.Anything, "alice").Return(f.user, nil)
		f.users.On("FindByID", mock.Anything, int64(11)).Return(f.user, nil)

		first, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "s3cret-pass"})
		require.NoError(t, err)

		second, err := f.svc.Refresh(ctx, RefreshInput{RefreshToken: first.RefreshToken})
		require.NoError(t, err)
		assert.NotEqual(t, first.AccessToken, second.AccessToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByUsername", mock.Anything, "alice").Return(f.user, nil)

		first, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "s3cret-pass"})
		require.NoError(t, err)

		_, err = f.svc.Refresh(ctx, RefreshInput{RefreshToken: first.AccessToken})
		assert.Equal(t, "TOKEN_INVALID", errorCode(err))
	})

	t.Run("deleted user", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByUsername", mock.Anything, "alice").Return(f.user, nil)
		f.users.On("FindByID", mock.Anything, int64(11)).Return(nil, shared.ErrNotFound)

		first, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "s3cret-pass"})
		require.NoError(t, err)

		_, err = f.svc.Refresh(ctx, RefreshInput{RefreshToken: first.RefreshToken})
		assert.Equal(t, "TOKEN_INVALID", errorCode(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.users.On("FindByUsername", mock.Anything, "alice").Return(f.user, nil)

	result, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := f.jwt.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims))

	revoked, err := f.revoked.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
