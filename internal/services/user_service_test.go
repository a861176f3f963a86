package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
	"github.com/klpbbs/forum/internal/utils"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewUserService(
		repositories.NewUserRepository(db, nil),
		repositories.NewNotificationRepository(db),
	)
	return svc, db
}

func TestUpdateProfileKeepsEmptyFields(t *testing.T) {
	svc, db := newUserService(t)
	user := seedUser(t, db, "alice")

	_, err := svc.UpdateProfile(user.ID, &UpdateProfileRequest{Nickname: "小A", Location: "上海"})
	require.NoError(t, err)

	// 空字段不覆盖已有值
	updated, err := svc.UpdateProfile(user.ID, &UpdateProfileRequest{Signature: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "小A", updated.Nickname)
	assert.Equal(t, "上海", updated.Location)
	assert.Equal(t, "hello", updated.Signature)
}

func TestChangePassword(t *testing.T) {
	svc, db := newUserService(t)
	user := seedUser(t, db, "alice")

	// 旧密码错误
	err := svc.ChangePassword(user.ID, "wrongpassword", "newpassword456")
	assert.Error(t, err)

	require.NoError(t, svc.ChangePassword(user.ID, "password123", "newpassword456"))

	reloaded, err := svc.UserRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(reloaded.PasswordHash, "newpassword456"))
}

func TestFollowAndUnfollow(t *testing.T) {
	svc, db := newUserService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))

	// 双方计数器在同一事务中更新
	a, err := svc.UserRepo.GetByID(alice.ID)
	require.NoError(t, err)
	b, err := svc.UserRepo.GetByID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, a.FollowingsCount)
	assert.Equal(t, 1, b.FollowersCount)

	// 被关注者收到通知
	notifications, err := svc.NotificationRepo.ListByUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Content, "alice")

	// 重复关注冲突
	assert.ErrorIs(t, svc.Follow(alice.ID, bob.ID), ErrAlreadyFollow)

	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))

	a, err = svc.UserRepo.GetByID(alice.ID)
	require.NoError(t, err)
	b, err = svc.UserRepo.GetByID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, a.FollowingsCount)
	assert.Equal(t, 0, b.FollowersCount)

	// 未关注状态下取关报错
	assert.ErrorIs(t, svc.Unfollow(alice.ID, bob.ID), ErrNotFollowing)
}

func TestFollowSelf(t *testing.T) {
	svc, db := newUserService(t)
	alice := seedUser(t, db, "alice")

	assert.ErrorIs(t, svc.Follow(alice.ID, alice.ID), ErrSelfFollow)
}

func TestFollowMissingUser(t *testing.T) {
	svc, db := newUserService(t)
	alice := seedUser(t, db, "alice")

	assert.ErrorIs(t, svc.Follow(alice.ID, 9999), ErrUserNotFound)
}

func TestSearchAndActive(t *testing.T) {
	svc, db := newUserService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	banned := seedUser(t, db, "charlie")

	banned.Status = models.UserStatusBanned
	require.NoError(t, svc.UserRepo.Update(banned))

	ids, err := svc.SearchIDs("ali")
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID}, ids)

	active, err := svc.ActiveIDs([]uint{alice.ID, bob.ID, banned.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{alice.ID, bob.ID}, active)

	count, err := svc.CountActive()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSortUsersByLevel(t *testing.T) {
	svc, db := newUserService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	bob.Level = 5
	require.NoError(t, svc.UserRepo.Update(bob))

	sorted, err := svc.SortBy("level-points-reputation", []uint{alice.ID, bob.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID, alice.ID}, sorted)
}

func TestSortUsersUnknownDimension(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.SortBy("bogus", []uint{1})
	assert.ErrorIs(t, err, ErrNotFound)
}
