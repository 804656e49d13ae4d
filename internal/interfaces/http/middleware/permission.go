package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PermissionChecker answers whether a user holds a permission.
type PermissionChecker interface {
	Can(ctx context.Context, userID int64, guard, permission string) (bool, error)
}

// Permissions builds authorization middleware over one checker.
type Permissions struct {
	checker PermissionChecker
	guard   string
	logger  *zap.Logger
}

// NewPermissions creates the middleware factory. The guard is the one the JWT
// users sign in through.
func NewPermissions(checker PermissionChecker, guard string, logger *zap.Logger) *Permissions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Permissions{checker: checker, guard: identity.NormalizeGuard(guard), logger: logger}
}

// Require demands one exact permission.
func (p *Permissions) Require(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p.check(c, permission)
	}
}

// Resource demands resource:action where the action follows the HTTP method.
func (p *Permissions) Resource(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p.check(c, identity.PermissionName(resource, methodToAction(c.Request.Method)))
	}
}

func (p *Permissions) check(c *gin.Context, permission string) {
	claims := GetClaims(c)
	if claims == nil {
		abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	ok, err := p.checker.Can(c.Request.Context(), claims.UserID, p.guard, permission)
	if err != nil {
		p.logger.Error("Permission check failed",
			zap.Int64("user_id", claims.UserID),
			zap.String("permission", permission),
			zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.ErrCodeInternal, "Permission check failed", c.GetString("request_id")))
		return
	}
	if !ok {
		p.logger.Debug("Permission denied",
			zap.Int64("user_id", claims.UserID),
			zap.String("permission", permission))
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.ErrCodeForbidden, "Missing permission: "+permission, c.GetString("request_id")))
		return
	}
	c.Next()
}

// methodToAction converts HTTP method to permission action
func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}
