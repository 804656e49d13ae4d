package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// LoginInput is a credential pair.
type LoginInput struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// RefreshInput carries a refresh token.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserInfo is the signed-in user as returned to the client.
type UserInfo struct {
	ID          int64     `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
}

// LoginResult is a token pair plus the user it was issued to.
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// AuthService handles sign-in.
type AuthService struct {
	users      identity.UserRepository
	authorizer *Authorizer
	jwtService *auth.JWTService
	revoked    auth.RevocationList
	logger     *zap.Logger
}

// NewAuthService creates an authentication service.
func NewAuthService(
	users identity.UserRepository,
	authorizer *Authorizer,
	jwtService *auth.JWTService,
	revoked auth.RevocationList,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		authorizer: authorizer,
		jwtService: jwtService,
		revoked:    revoked,
		logger:     logger,
	}
}

// Login checks credentials and issues tokens.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during login", zap.String("username", input.Username))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive() {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", input.Username))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}
	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, errInvalidCredentials
	}

	return s.issue(ctx, user)
}

// Refresh exchanges a refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		}
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}
	return s.issue(ctx, user)
}

// Logout revokes the access token described by claims.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.revoked.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke token", zap.Int64("user_id", claims.UserID), zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

func (s *AuthService) issue(ctx context.Context, user *identity.User) (*LoginResult, error) {
	permissions, err := s.authorizer.Permissions(ctx, user.ID, identity.DefaultGuard)
	if err != nil {
		s.logger.Error("Failed to collect user permissions", zap.Error(err))
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.Int64("user_id", user.ID))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User: UserInfo{
			ID:          user.ID,
			TenantID:    user.TenantID,
			Username:    user.Username,
			Name:        user.Name,
			Permissions: permissions,
		},
	}, nil
}
