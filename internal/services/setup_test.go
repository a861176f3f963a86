package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
	"github.com/klpbbs/forum/internal/storage"
	"github.com/klpbbs/forum/internal/utils"
	pkgutils "github.com/klpbbs/forum/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.AutoMigrate(db))
	return db
}

func newAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	userRepo := repositories.NewUserRepository(db, nil)
	tokens := pkgutils.NewTokenManager("test-secret", 1)
	return NewAuthService(userRepo, tokens)
}

// seedUser 直接写库创建用户，绕过注册校验
func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		Level:        1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title, status string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		AuthorID: authorID,
		Status:   status,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
