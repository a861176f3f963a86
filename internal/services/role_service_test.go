package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klpbbs/forum/internal/repositories"
)

func TestAssignRoleToUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(repositories.NewRoleRepository(db), repositories.NewUserRepository(db, nil))
	user := seedUser(t, db, "alice")

	role, err := svc.CreateRole(&CreateRoleRequest{Name: "moderator", Description: "版主"})
	require.NoError(t, err)

	require.NoError(t, svc.AssignRoleToUser(user.ID, role.ID))

	roles, err := svc.RolesByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "moderator", roles[0].Name)

	has, err := svc.UserHasRole(user.ID, "moderator")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.UserHasRole(user.ID, "admin")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAssignRoleMissingUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(repositories.NewRoleRepository(db), repositories.NewUserRepository(db, nil))

	role, err := svc.CreateRole(&CreateRoleRequest{Name: "moderator"})
	require.NoError(t, err)

	err = svc.AssignRoleToUser(9999, role.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAssignMissingRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(repositories.NewRoleRepository(db), repositories.NewUserRepository(db, nil))
	user := seedUser(t, db, "alice")

	err := svc.AssignRoleToUser(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestListRoles(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(repositories.NewRoleRepository(db), repositories.NewUserRepository(db, nil))

	_, err := svc.CreateRole(&CreateRoleRequest{Name: "admin"})
	require.NoError(t, err)
	_, err = svc.CreateRole(&CreateRoleRequest{Name: "moderator"})
	require.NoError(t, err)

	roles, err := svc.ListRoles()
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}
