package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer_Can(t *testing.T) {
	ctx := context.Background()
	roles := []RoleEntry{
		{ID: 1, Name: "admin", Permissions: []string{"brand:read", "brand:delete"}},
		{ID: 2, Name: "viewer", Permissions: []string{"brand:read", "unit:read"}},
	}

	t.Run("user without roles is denied without loading", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("RoleIDs", mock.Anything, int64(9)).Return([]int64{}, nil)
		loader := staticLoader(roles...)
		a := NewAuthorizer(NewRegistry(newMemoryStore(), loader), users)

		ok, err := a.Can(ctx, 9, "api", "brand:read")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, loader.calls.Load())
		users.AssertExpectations(t)
	})

	t.Run("grant through any held role", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("RoleIDs", mock.Anything, int64(5)).Return([]int64{2}, nil)
		a := NewAuthorizer(NewRegistry(newMemoryStore(), staticLoader(roles...)), users)

		ok, err := a.Can(ctx, 5, "api", "unit:read")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = a.Can(ctx, 5, "api", "brand:delete")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("role repository errors propagate", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("RoleIDs", mock.Anything, int64(5)).Return(nil, errBoom)
		a := NewAuthorizer(NewRegistry(newMemoryStore(), staticLoader(roles...)), users)

		_, err := a.Can(ctx, 5, "api", "unit:read")
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestAuthorizer_Permissions(t *testing.T) {
	users := new(MockUserRepository)
	users.On("RoleIDs", mock.Anything, int64(5)).Return([]int64{1, 2}, nil)
	a := NewAuthorizer(NewRegistry(newMemoryStore(), staticLoader(
		RoleEntry{ID: 1, Name: "admin", Permissions: []string{"brand:read", "brand:delete"}},
		RoleEntry{ID: 2, Name: "viewer", Permissions: []string{"unit:read", "brand:read"}},
	)), users)

	perms, err := a.Permissions(context.Background(), 5, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"brand:delete", "brand:read", "unit:read"}, perms)
}
