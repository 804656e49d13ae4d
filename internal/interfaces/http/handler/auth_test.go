package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appidentity "github.com/stockpile/backend/internal/application/identity"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, input appidentity.LoginInput) (*appidentity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.LoginResult), args.Error(1)
}

func (m *MockAuthenticator) Refresh(ctx context.Context, input appidentity.RefreshInput) (*appidentity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.LoginResult), args.Error(1)
}

func (m *MockAuthenticator) Logout(ctx context.Context, claims *auth.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func setupAuthRouter(a Authenticator) *gin.Engine {
	h := NewAuthHandler(a)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/logout", withClaims(1), h.Logout)
	r.POST("/anonymous/logout", h.Logout)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("issues tokens", func(t *testing.T) {
		a := new(MockAuthenticator)
		r := setupAuthRouter(a)

		a.On("Login", mock.Anything, appidentity.LoginInput{Username: "admin", Password: "secret"}).
			Return(&appidentity.LoginResult{
				AccessToken:          "access",
				RefreshToken:         "refresh",
				AccessTokenExpiresAt: time.Now().Add(time.Hour),
				TokenType:            "Bearer",
				User:                 appidentity.UserInfo{ID: 1, Username: "admin", Permissions: []string{"brand:read"}},
			}, nil)

		w := perform(r, http.MethodPost, "/auth/login", `{"username":"admin","password":"secret"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, string(decode(t, w).Data), `"access_token":"access"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		r := setupAuthRouter(new(MockAuthenticator))

		w := perform(r, http.MethodPost, "/auth/login", `{"username":"admin"}`)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decode(t, w)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, "The password field is required.", env.Error.Details["password"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		a := new(MockAuthenticator)
		r := setupAuthRouter(a)

		a.On("Login", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password"))

		w := perform(r, http.MethodPost, "/auth/login", `{"username":"admin","password":"nope"}`)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", decode(t, w).Error.Code)
	})

	t.Run("inactive account", func(t *testing.T) {
		a := new(MockAuthenticator)
		r := setupAuthRouter(a)

		a.On("Login", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is inactive"))

		w := perform(r, http.MethodPost, "/auth/login", `{"username":"admin","password":"secret"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	a := new(MockAuthenticator)
	r := setupAuthRouter(a)

	a.On("Refresh", mock.Anything, appidentity.RefreshInput{RefreshToken: "expired"}).
		Return(nil, shared.NewDomainError("TOKEN_EXPIRED", "Token has expired"))

	w := perform(r, http.MethodPost, "/auth/refresh", `{"refresh_token":"expired"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_EXPIRED", decode(t, w).Error.Code)

	w = perform(r, http.MethodPost, "/auth/refresh", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	a := new(MockAuthenticator)
	r := setupAuthRouter(a)

	a.On("Logout", mock.Anything, mock.MatchedBy(func(c *auth.Claims) bool { return c.UserID == 1 })).Return(nil)

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodPost, "/auth/logout", "").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodPost, "/anonymous/logout", "").Code)
	a.AssertExpectations(t)
}
