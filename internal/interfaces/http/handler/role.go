package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/interfaces/http/dto"
	"github.com/stockpile/backend/internal/interfaces/http/middleware"
)

// RoleGrants is the role and user-role management surface.
type RoleGrants interface {
	SyncPermissions(ctx context.Context, roleID int64, names []string) (*identity.Role, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
	RevokeRole(ctx context.Context, userID, roleID int64) error
}

// PermissionLister returns a user's effective permissions.
type PermissionLister interface {
	Permissions(ctx context.Context, userID int64, guard string) ([]string, error)
}

// SyncPermissionsRequest names the complete permission set of a role.
type SyncPermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required,max=500,dive,max=125"`
}

// AssignRoleRequest names the role to grant.
type AssignRoleRequest struct {
	RoleID int64 `json:"role_id" binding:"required,gt=0"`
}

// RoleResponse is a role with its permission names.
type RoleResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	GuardName   string   `json:"guard_name"`
	Permissions []string `json:"permissions"`
}

// MePermissionsResponse lists what the caller may do.
type MePermissionsResponse struct {
	UserID      int64    `json:"user_id"`
	Guard       string   `json:"guard"`
	Permissions []string `json:"permissions"`
}

// RoleHandler handles role grants and user-role assignment
type RoleHandler struct {
	BaseHandler
	grants      RoleGrants
	permissions PermissionLister
	guard       string
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(grants RoleGrants, permissions PermissionLister, guard string) *RoleHandler {
	return &RoleHandler{
		grants:      grants,
		permissions: permissions,
		guard:       identity.NormalizeGuard(guard),
	}
}

// SyncPermissions handles PUT /roles/:id/permissions
func (h *RoleHandler) SyncPermissions(c *gin.Context) {
	roleID, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req SyncPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	role, err := h.grants.SyncPermissions(c.Request.Context(), roleID, req.Permissions)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	names := make([]string, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		names = append(names, p.Name)
	}
	h.Success(c, RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		GuardName:   role.GuardName,
		Permissions: names,
	})
}

// AssignRole handles POST /users/:id/roles
func (h *RoleHandler) AssignRole(c *gin.Context) {
	userID, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	if err := h.grants.AssignRole(c.Request.Context(), userID, req.RoleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RevokeRole handles DELETE /users/:id/roles/:role_id
func (h *RoleHandler) RevokeRole(c *gin.Context) {
	userID, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	roleID, err := parseID(c, "role_id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.grants.RevokeRole(c.Request.Context(), userID, roleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MyPermissions handles GET /me/permissions
func (h *RoleHandler) MyPermissions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	perms, err := h.permissions.Permissions(c.Request.Context(), claims.UserID, h.guard)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if perms == nil {
		perms = []string{}
	}
	h.Success(c, MePermissionsResponse{UserID: claims.UserID, Guard: h.guard, Permissions: perms})
}
