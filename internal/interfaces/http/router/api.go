package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/interfaces/http/handler"
	"github.com/stockpile/backend/internal/interfaces/http/middleware"
)

// Resource is one administered resource and the path it is served under.
type Resource struct {
	Prefix  string
	Service handler.ResourceService
}

// API is everything the admin routes are served by.
type API struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Roles     *handler.RoleHandler
	Resources []Resource
	// Permissions guards protected routes. Nil leaves them to authentication only.
	Permissions *middleware.Permissions
	// LoginLimit throttles the sign-in endpoints. Optional.
	LoginLimit gin.HandlerFunc
}

// Mount registers the API on r, with /health on the engine root.
func (r *Router) Mount(api API) *Router {
	if api.Health != nil {
		r.engine.GET("/health", api.Health.Health)
	}

	var authorize handler.Authorize
	if api.Permissions != nil {
		authorize = api.Permissions.Require
	}
	require := func(permission string, h gin.HandlerFunc) []gin.HandlerFunc {
		if authorize == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{authorize(permission), h}
	}

	if api.Auth != nil {
		login := NewDomainGroup("/auth")
		if api.LoginLimit != nil {
			login.Use(api.LoginLimit)
		}
		login.POST("/login", api.Auth.Login).POST("/refresh", api.Auth.Refresh)
		r.Public(login)
		r.Protected(NewDomainGroup("/auth").POST("/logout", api.Auth.Logout))
	}

	if api.Roles != nil {
		grants := NewDomainGroup("")
		grants.PUT("/roles/:id/permissions", require(identity.PermissionName("role", "update"), api.Roles.SyncPermissions)...)
		grants.POST("/users/:id/roles", require(identity.PermissionName("user", "update"), api.Roles.AssignRole)...)
		grants.DELETE("/users/:id/roles/:role_id", require(identity.PermissionName("user", "update"), api.Roles.RevokeRole)...)
		grants.GET("/me/permissions", api.Roles.MyPermissions)
		r.Protected(grants)
	}

	for _, res := range api.Resources {
		r.Protected(NewResourceGroup(res.Prefix, res.Service, authorize))
	}
	return r
}
