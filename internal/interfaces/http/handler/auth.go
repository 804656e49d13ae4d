package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	appidentity "github.com/stockpile/backend/internal/application/identity"
	"github.com/stockpile/backend/internal/infrastructure/auth"
	"github.com/stockpile/backend/internal/interfaces/http/dto"
	"github.com/stockpile/backend/internal/interfaces/http/middleware"
)

// Authenticator signs users in and out.
type Authenticator interface {
	Login(ctx context.Context, input appidentity.LoginInput) (*appidentity.LoginResult, error)
	Refresh(ctx context.Context, input appidentity.RefreshInput) (*appidentity.LoginResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	auth Authenticator
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authenticator Authenticator) *AuthHandler {
	return &AuthHandler{auth: authenticator}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	result, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout handles POST /auth/logout. The current access token is revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
