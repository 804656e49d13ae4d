package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoleGrants struct {
	mock.Mock
}

func (m *MockRoleGrants) SyncPermissions(ctx context.Context, roleID int64, names []string) (*identity.Role, error) {
	args := m.Called(ctx, roleID, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleGrants) AssignRole(ctx context.Context, userID, roleID int64) error {
	return m.Called(ctx, userID, roleID).Error(0)
}

func (m *MockRoleGrants) RevokeRole(ctx context.Context, userID, roleID int64) error {
	return m.Called(ctx, userID, roleID).Error(0)
}

type MockPermissionLister struct {
	mock.Mock
}

func (m *MockPermissionLister) Permissions(ctx context.Context, userID int64, guard string) ([]string, error) {
	args := m.Called(ctx, userID, guard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func setupRoleRouter(grants RoleGrants, perms PermissionLister) *gin.Engine {
	h := NewRoleHandler(grants, perms, "")
	r := gin.New()
	r.PUT("/roles/:id/permissions", h.SyncPermissions)
	r.POST("/users/:id/roles", h.AssignRole)
	r.DELETE("/users/:id/roles/:role_id", h.RevokeRole)
	r.GET("/me/permissions", withClaims(42), h.MyPermissions)
	r.GET("/anonymous/permissions", h.MyPermissions)
	return r
}

func TestRoleHandler_SyncPermissions(t *testing.T) {
	t.Run("returns the role with its permission names", func(t *testing.T) {
		grants := new(MockRoleGrants)
		r := setupRoleRouter(grants, nil)

		role := &identity.Role{Name: "editor", GuardName: "api", Permissions: []identity.Permission{
			{Name: "brand:read"}, {Name: "brand:update"},
		}}
		role.ID = 5
		grants.On("SyncPermissions", mock.Anything, int64(5), []string{"brand:read", "brand:update"}).Return(role, nil)

		w := perform(r, http.MethodPut, "/roles/5/permissions", `{"permissions":["brand:read","brand:update"]}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"id":5,"name":"editor","guard_name":"api","permissions":["brand:read","brand:update"]}`,
			string(decode(t, w).Data))
	})

	t.Run("empty list is allowed", func(t *testing.T) {
		grants := new(MockRoleGrants)
		r := setupRoleRouter(grants, nil)

		role := &identity.Role{Name: "editor", GuardName: "api"}
		grants.On("SyncPermissions", mock.Anything, int64(5), []string{}).Return(role, nil)

		w := perform(r, http.MethodPut, "/roles/5/permissions", `{"permissions":[]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"id":0,"name":"editor","guard_name":"api","permissions":[]}`, string(decode(t, w).Data))
	})

	t.Run("missing list is a binding failure", func(t *testing.T) {
		grants := new(MockRoleGrants)
		r := setupRoleRouter(grants, nil)

		w := perform(r, http.MethodPut, "/roles/5/permissions", `{}`)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "The permissions field is required.", decode(t, w).Error.Details["permissions"])
		grants.AssertNotCalled(t, "SyncPermissions", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown names surface as field errors", func(t *testing.T) {
		grants := new(MockRoleGrants)
		r := setupRoleRouter(grants, nil)

		grants.On("SyncPermissions", mock.Anything, int64(5), []string{"brand:fly"}).Return(nil,
			validation.Failed(validation.Errors{"permissions": "The following permissions do not exist: brand:fly"}))

		w := perform(r, http.MethodPut, "/roles/5/permissions", `{"permissions":["brand:fly"]}`)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "The following permissions do not exist: brand:fly", decode(t, w).Error.Details["permissions"])
	})

	t.Run("cache failure is a server error", func(t *testing.T) {
		grants := new(MockRoleGrants)
		r := setupRoleRouter(grants, nil)

		grants.On("SyncPermissions", mock.Anything, int64(5), []string{"brand:read"}).Return(nil, shared.ErrCacheInvalidation)

		w := perform(r, http.MethodPut, "/roles/5/permissions", `{"permissions":["brand:read"]}`)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "CACHE_INVALIDATION_FAILED", decode(t, w).Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := setupRoleRouter(new(MockRoleGrants), nil)

		w := perform(r, http.MethodPut, "/roles/5/permissions", `{"permissions":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_JSON", decode(t, w).Error.Code)
	})
}

func TestRoleHandler_AssignAndRevoke(t *testing.T) {
	grants := new(MockRoleGrants)
	r := setupRoleRouter(grants, nil)

	grants.On("AssignRole", mock.Anything, int64(9), int64(2)).Return(nil)
	grants.On("RevokeRole", mock.Anything, int64(9), int64(2)).Return(nil)
	grants.On("RevokeRole", mock.Anything, int64(9), int64(3)).
		Return(shared.ErrNotFound.WithMessage("User does not have this role"))

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodPost, "/users/9/roles", `{"role_id":2}`).Code)
	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodDelete, "/users/9/roles/2", "").Code)

	w := perform(r, http.MethodDelete, "/users/9/roles/3", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User does not have this role", decode(t, w).Error.Message)

	w = perform(r, http.MethodPost, "/users/9/roles", `{"role_id":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w).Error.Details, "role_id")

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodDelete, "/users/9/roles/x", "").Code)
	grants.AssertExpectations(t)
}

func TestRoleHandler_MyPermissions(t *testing.T) {
	perms := new(MockPermissionLister)
	r := setupRoleRouter(nil, perms)

	perms.On("Permissions", mock.Anything, int64(42), identity.DefaultGuard).Return([]string{"brand:read"}, nil).Once()

	w := perform(r, http.MethodGet, "/me/permissions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"guard":"api","permissions":["brand:read"]}`, string(decode(t, w).Data))

	perms.On("Permissions", mock.Anything, int64(42), identity.DefaultGuard).Return(nil, nil).Once()
	w = perform(r, http.MethodGet, "/me/permissions", "")
	assert.JSONEq(t, `{"user_id":42,"guard":"api","permissions":[]}`, string(decode(t, w).Data))

	w = perform(r, http.MethodGet, "/anonymous/permissions", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
