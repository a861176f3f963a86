package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klpbbs/forum/internal/repositories"
)

func TestCreateGroupAddsOwnerAsMember(t *testing.T) {
	db := newTestDB(t)
	groupRepo := repositories.NewGroupRepository(db)
	svc := NewGroupService(groupRepo, repositories.NewUserRepository(db, nil))
	owner := seedUser(t, db, "owner")

	group, err := svc.Create(owner.ID, &CreateGroupRequest{Name: "gophers", Description: "Go 爱好者"})
	require.NoError(t, err)
	require.NotZero(t, group.ID)

	isMember, err := groupRepo.IsMember(group.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestCreateGroupMissingCreator(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repositories.NewGroupRepository(db), repositories.NewUserRepository(db, nil))

	_, err := svc.Create(9999, &CreateGroupRequest{Name: "gophers"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestJoinAndLeave(t *testing.T) {
	db := newTestDB(t)
	groupRepo := repositories.NewGroupRepository(db)
	svc := NewGroupService(groupRepo, repositories.NewUserRepository(db, nil))
	owner := seedUser(t, db, "owner")
	member := seedUser(t, db, "member")

	group, err := svc.Create(owner.ID, &CreateGroupRequest{Name: "gophers"})
	require.NoError(t, err)

	_, err = svc.Join(member.ID, group.ID)
	require.NoError(t, err)

	// 重复加入报冲突
	_, err = svc.Join(member.ID, group.ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.ErrorIs(t, err, ErrConflict)

	groups, err := svc.GroupsByUser(member.ID)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	_, err = svc.Leave(member.ID, group.ID)
	require.NoError(t, err)

	isMember, err := groupRepo.IsMember(group.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestLeaveNotMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repositories.NewGroupRepository(db), repositories.NewUserRepository(db, nil))
	owner := seedUser(t, db, "owner")
	outsider := seedUser(t, db, "outsider")

	group, err := svc.Create(owner.ID, &CreateGroupRequest{Name: "gophers"})
	require.NoError(t, err)

	_, err = svc.Leave(outsider.ID, group.ID)
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestJoinMissingGroup(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repositories.NewGroupRepository(db), repositories.NewUserRepository(db, nil))
	user := seedUser(t, db, "alice")

	_, err := svc.Join(user.ID, 9999)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
