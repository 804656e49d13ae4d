package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/auth"
	"github.com/stockpile/backend/internal/infrastructure/logger"
	"github.com/stockpile/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTConfig holds configuration for JWT middleware
type JWTConfig struct {
	JWTService *auth.JWTService
	// Revoked is consulted for every token. Optional.
	Revoked auth.RevocationList
	Logger  *zap.Logger
}

// JWTAuth authenticates the bearer access token and installs the caller as
// the request actor.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || token == "" {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			log.Debug("Access token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		if cfg.Revoked != nil && claims.ID != "" {
			revoked, err := cfg.Revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// fail closed
				log.Error("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
				abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
				return
			}
			if revoked {
				abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
				return
			}
		}

		tenantID, err := claims.TenantUUID()
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		actor := shared.Actor{UserID: claims.UserID, TenantID: tenantID}
		ctx, reqLogger := logger.WithActor(c.Request.Context(), logger.GetGinLogger(c), actor)
		c.Request = c.Request.WithContext(ctx)
		logger.SetGinLogger(c, reqLogger)
		c.Set(JWTClaimsKey, claims)

		c.Next()
	}
}

// GetClaims returns the authenticated claims, or nil before JWTAuth.
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, c.GetString("request_id")))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
