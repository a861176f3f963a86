package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/klpbbs/forum/internal/models"
)

const (
	userCacheKeyPrefix = "user:info:" // Redis String, 值是 cachedUser JSON
	userCacheTTL       = 1 * time.Hour
)

// cachedUser 缓存专用序列化
// User 的凭据字段带 json:"-"，直接序列化会丢掉密码哈希和重置令牌，
// 缓存命中后再 Save 就会把空值写回数据库，所以这里显式补上这三个字段
type cachedUser struct {
	models.User
	PasswordHash     string     `json:"password_hash"`
	ResetToken       string     `json:"reset_token"`
	ResetTokenExpiry *time.Time `json:"reset_token_expiry"`
}

func newCachedUser(user *models.User) *cachedUser {
	return &cachedUser{
		User:             *user,
		PasswordHash:     user.PasswordHash,
		ResetToken:       user.ResetToken,
		ResetTokenExpiry: user.ResetTokenExpiry,
	}
}

func (c *cachedUser) toUser() *models.User {
	user := c.User
	user.PasswordHash = c.PasswordHash
	user.ResetToken = c.ResetToken
	user.ResetTokenExpiry = c.ResetTokenExpiry
	return &user
}

// 用户排序维度 → ORDER BY 子句，全部由数据库完成
var userSortClauses = map[string]string{
	"level-points-reputation": "level DESC, points DESC, reputation DESC",
	"activity":                "posts_count DESC, comments_count DESC, likes_count DESC",
	"social-influence":        "followers_count DESC, followings_count ASC",
	"registration-time":       "created_at DESC",
	"last-login-time":         "last_login_time DESC",
	"update-time":             "updated_at DESC",
}

// UserSortClause 返回排序维度对应的 ORDER BY 子句
func UserSortClause(dimension string) (string, bool) {
	clause, ok := userSortClauses[dimension]
	return clause, ok
}

type UserRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewUserRepository(db *gorm.DB, redis *redis.Client) *UserRepository {
	return &UserRepository{db: db, redis: redis}
}

// Create 创建用户
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID 根据 ID 获取用户 (带缓存)
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	// 尝试从 Redis 获取
	if r.redis != nil {
		key := fmt.Sprintf("%s%d", userCacheKeyPrefix, id)
		val, err := r.redis.Get(context.Background(), key).Result()
		if err == nil {
			var cached cachedUser
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached.toUser(), nil
			}
		}
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}

	// 回填 Redis
	if r.redis != nil {
		key := fmt.Sprintf("%s%d", userCacheKeyPrefix, id)
		if data, err := json.Marshal(newCachedUser(&user)); err == nil {
			r.redis.Set(context.Background(), key, data, userCacheTTL)
		}
	}

	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByPhone 根据手机号获取用户
func (r *UserRepository) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByResetToken 根据密码重置令牌获取用户
func (r *UserRepository) GetByResetToken(token string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("reset_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername 检查用户名是否存在
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail 检查邮箱是否存在
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByPhone 检查手机号是否存在
func (r *UserRepository) ExistsByPhone(phone string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("phone = ? AND phone <> ''", phone).Count(&count).Error
	return count > 0, err
}

// Update 更新用户 (同时清除缓存)
func (r *UserRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return err
	}

	r.invalidate(user.ID)
	return nil
}

// UpdateStatus 更新用户状态 (同时清除缓存)
func (r *UserRepository) UpdateStatus(id uint, status string) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return err
	}

	r.invalidate(id)
	return nil
}

// UpdatePassword 更新密码哈希 (同时清除缓存)
func (r *UserRepository) UpdatePassword(id uint, passwordHash string) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash).Error; err != nil {
		return err
	}

	r.invalidate(id)
	return nil
}

// List 获取用户列表
func (r *UserRepository) List(limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

// SearchIDsByKeyword 按关键字搜索用户 ID（用户名/昵称/邮箱/手机号子串匹配）
func (r *UserRepository) SearchIDsByKeyword(keyword string) ([]uint, error) {
	var ids []uint
	like := "%" + keyword + "%"
	err := r.db.Model(&models.User{}).
		Where("username LIKE ? OR nickname LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like, like).
		Pluck("id", &ids).Error
	return ids, err
}

// ActiveIDs 过滤出状态为 ACTIVE 的用户 ID
func (r *UserRepository) ActiveIDs(ids []uint) ([]uint, error) {
	var out []uint
	err := r.db.Model(&models.User{}).
		Where("id IN ? AND status = ?", ids, models.UserStatusActive).
		Pluck("id", &out).Error
	return out, err
}

// CountActive 统计 ACTIVE 用户数
func (r *UserRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&count).Error
	return count, err
}

// SortIDs 在给定 ID 集内按 orderClause 排序，排序完全交给数据库
func (r *UserRepository) SortIDs(ids []uint, orderClause string) ([]uint, error) {
	var out []uint
	err := r.db.Model(&models.User{}).
		Where("id IN ?", ids).
		Order(orderClause).
		Pluck("id", &out).Error
	return out, err
}

// AddFollower 建立关注关系并维护双方计数器，单事务完成
func (r *UserRepository) AddFollower(followerID, followingID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		rel := models.UserFollower{FollowerID: followerID, FollowingID: followingID}
		if err := tx.Create(&rel).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", followingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followerID).
			UpdateColumn("followings_count", gorm.Expr("followings_count + 1")).Error
	})
	if err != nil {
		return err
	}
	r.invalidate(followerID)
	r.invalidate(followingID)
	return nil
}

// RemoveFollower 解除关注关系并维护双方计数器
func (r *UserRepository) RemoveFollower(followerID, followingID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.UserFollower{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&models.User{}).Where("id = ?", followingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followerID).
			UpdateColumn("followings_count", gorm.Expr("followings_count - 1")).Error
	})
	if err != nil {
		return err
	}
	r.invalidate(followerID)
	r.invalidate(followingID)
	return nil
}

// IsFollowing 检查关注关系是否存在
func (r *UserRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserFollower{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) invalidate(id uint) {
	if r.redis != nil {
		key := fmt.Sprintf("%s%d", userCacheKeyPrefix, id)
		r.redis.Del(context.Background(), key)
	}
}
