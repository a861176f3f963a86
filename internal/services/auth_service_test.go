package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
	"github.com/klpbbs/forum/internal/utils"
	pkgutils "github.com/klpbbs/forum/pkg/utils"
)

func TestRegisterDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	user, err := svc.Register(&RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 0, user.Points)
	assert.False(t, user.IsOnline)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "password123"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.Register(&RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUserExists)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.Register(&RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	// 用户名太短
	_, err := svc.Register(&RegisterRequest{Username: "ab", Email: "a@b.com", Password: "password123"})
	assert.Error(t, err)

	// 密码太短
	_, err = svc.Register(&RegisterRequest{Username: "alice", Email: "a@b.com", Password: "short"})
	assert.Error(t, err)

	// 邮箱格式错误
	_, err = svc.Register(&RegisterRequest{Username: "alice", Email: "not-an-email", Password: "password123"})
	assert.Error(t, err)
}

func TestLoginSetsOnline(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	user := seedUser(t, db, "alice")

	resp, err := svc.Login(&LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.UserID)
	assert.NotEmpty(t, resp.Token)

	reloaded, err := svc.UserRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsOnline)
	require.NotNil(t, reloaded.LastLoginTime)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	seedUser(t, db, "alice")

	// 密码错误和用户不存在返回同一个错误
	_, err := svc.Login(&LoginRequest{Username: "alice", Password: "wrongpassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginRequest{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	user := seedUser(t, db, "alice")

	_, err := svc.Login(&LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID))

	reloaded, err := svc.UserRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsOnline)
}

// 启用缓存时，命中缓存后的签到等整体回写不能破坏密码哈希
func TestCheckInAfterCacheHitKeepsPassword(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	userRepo := repositories.NewUserRepository(db, client)
	svc := NewAuthService(userRepo, pkgutils.NewTokenManager("test-secret", 1))
	user := seedUser(t, db, "alice")

	// 预热缓存，再走一次缓存命中
	_, err := svc.UserRepo.GetByID(user.ID)
	require.NoError(t, err)
	_, err = svc.UserRepo.GetByID(user.ID)
	require.NoError(t, err)

	_, err = svc.CheckIn(user.ID)
	require.NoError(t, err)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.NotEmpty(t, reloaded.PasswordHash)

	_, err = svc.Login(&LoginRequest{Username: "alice", Password: "password123"})
	assert.NoError(t, err)
}

func TestCheckInOncePerDay(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	user := seedUser(t, db, "alice")

	checked, err := svc.CheckIn(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, checked.Points)

	_, err = svc.CheckIn(user.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	reloaded, err := svc.UserRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.Points)
}

func TestCheckInNextDay(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	user := seedUser(t, db, "alice")

	yesterday := time.Now().AddDate(0, 0, -1)
	user.LastCheckin = &yesterday
	user.Points = 10
	require.NoError(t, svc.UserRepo.Update(user))

	checked, err := svc.CheckIn(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, checked.Points)
}

func TestResetPasswordFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	user := seedUser(t, db, "alice")

	withToken, err := svc.ForgotPassword(user.Email)
	require.NoError(t, err)
	require.NotEmpty(t, withToken.ResetToken)
	require.NotNil(t, withToken.ResetTokenExpiry)

	require.NoError(t, svc.ResetPassword(withToken.ResetToken, "newpassword456"))

	// 旧密码失效，新密码可登录,令牌已清除
	_, err = svc.Login(&LoginRequest{Username: "alice", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginRequest{Username: "alice", Password: "newpassword456"})
	assert.NoError(t, err)

	reloaded, err := svc.UserRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.ResetToken)
	assert.Nil(t, reloaded.ResetTokenExpiry)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	user := seedUser(t, db, "alice")

	withToken, err := svc.ForgotPassword(user.Email)
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	withToken.ResetTokenExpiry = &expired
	require.NoError(t, svc.UserRepo.Update(withToken))

	err = svc.ResetPassword(withToken.ResetToken, "newpassword456")
	assert.ErrorIs(t, err, ErrTokenExpired)

	// 密码保持不变
	_, err = svc.Login(&LoginRequest{Username: "alice", Password: "password123"})
	assert.NoError(t, err)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	err := svc.ResetPassword("no-such-token", "newpassword456")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.ForgotPassword("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpgrade(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	user := seedUser(t, db, "alice")

	user.Points = 100
	require.NoError(t, svc.UserRepo.Update(user))

	upgraded, err := svc.Upgrade(user.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 2, upgraded.Level)
	assert.Equal(t, 40, upgraded.Points)

	// 余额不足
	_, err = svc.Upgrade(user.ID, 60)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpgradeRejectsNonPositiveCost(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	user := seedUser(t, db, "alice")

	// 负数会绕过余额检查白拿积分
	_, err := svc.Upgrade(user.ID, -100)
	assert.ErrorIs(t, err, ErrInvalidPointsCost)

	_, err = svc.Upgrade(user.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidPointsCost)

	reloaded, err := svc.UserRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Points)
	assert.Equal(t, 1, reloaded.Level)
}
