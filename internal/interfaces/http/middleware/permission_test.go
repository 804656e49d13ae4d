package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func permissionRouter(t *testing.T, checker *stubChecker) (*gin.Engine, string) {
	svc := newJWTService()
	perms := NewPermissions(checker, "", nil)

	r := gin.New()
	r.Use(RequestID(), JWTAuth(JWTConfig{JWTService: svc}))
	brands := r.Group("/brands", perms.Resource("brand"))
	brands.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	brands.POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })
	brands.PATCH("/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	brands.DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/sync", perms.Require("role:update"), func(c *gin.Context) { c.Status(http.StatusOK) })

	return r, BearerPrefix + issue(t, svc, 3).AccessToken
}

func TestPermissions_Resource(t *testing.T) {
	checker := &stubChecker{granted: map[string]bool{"brand:read": true, "brand:delete": true}}
	r, token := permissionRouter(t, checker)
	headers := map[string]string{AuthHeaderKey: token}

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/brands", http.StatusOK},
		{http.MethodPost, "/brands", http.StatusForbidden},
		{http.MethodPatch, "/brands/1", http.StatusForbidden},
		{http.MethodDelete, "/brands/1", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := perform(r, tt.method, tt.path, headers)
			assert.Equal(t, tt.status, w.Code)
		})
	}
	assert.Equal(t, []string{"api/brand:read", "api/brand:create", "api/brand:update", "api/brand:delete"}, checker.calls)
}

func TestPermissions_Require(t *testing.T) {
	checker := &stubChecker{granted: map[string]bool{}}
	r, token := permissionRouter(t, checker)

	w := perform(r, http.MethodGet, "/sync", map[string]string{AuthHeaderKey: token})
	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	assert.Equal(t, "Missing permission: role:update", resp.Error.Message)
}

func TestPermissions_CheckerError(t *testing.T) {
	checker := &stubChecker{err: errors.New("store down")}
	r, token := permissionRouter(t, checker)

	w := perform(r, http.MethodGet, "/brands", map[string]string{AuthHeaderKey: token})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPermissions_WithoutClaims(t *testing.T) {
	perms := NewPermissions(&stubChecker{}, "api", nil)
	r := gin.New()
	r.GET("/", perms.Require("brand:read"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMethodToAction(t *testing.T) {
	assert.Equal(t, "read", methodToAction(http.MethodGet))
	assert.Equal(t, "read", methodToAction(http.MethodHead))
	assert.Equal(t, "create", methodToAction(http.MethodPost))
	assert.Equal(t, "update", methodToAction(http.MethodPut))
	assert.Equal(t, "update", methodToAction(http.MethodPatch))
	assert.Equal(t, "delete", methodToAction(http.MethodDelete))
}
