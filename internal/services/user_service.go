package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
	"github.com/klpbbs/forum/internal/utils"
)

type UserService struct {
	UserRepo         *repositories.UserRepository
	NotificationRepo *repositories.NotificationRepository
}

func NewUserService(userRepo *repositories.UserRepository, notificationRepo *repositories.NotificationRepository) *UserService {
	return &UserService{
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
	}
}

// UpdateProfileRequest 资料更新请求，空字段不覆盖
type UpdateProfileRequest struct {
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	Signature string `json:"signature"`
	Gender    string `json:"gender"`
	Location  string `json:"location"`
}

// GetProfile 获取用户资料
func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 逐字段更新资料，空值保留原值
func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Signature != "" {
		user.Signature = req.Signature
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.Location != "" {
		user.Location = req.Location
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword 校验旧密码后更新哈希
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if !utils.ValidatePassword(newPassword) {
		return errors.New("invalid password")
	}

	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !utils.CheckPassword(user.PasswordHash, oldPassword) {
		return errors.New("old password is incorrect")
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.UserRepo.UpdatePassword(user.ID, newHash)
}

// Follow 关注用户，重复关注和自我关注均拒绝
func (s *UserService) Follow(followerID, followingID uint) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	follower, err := s.UserRepo.GetByID(followerID)
	if err != nil {
		return ErrUserNotFound
	}
	if _, err := s.UserRepo.GetByID(followingID); err != nil {
		return ErrUserNotFound
	}

	following, err := s.UserRepo.IsFollowing(followerID, followingID)
	if err != nil {
		return err
	}
	if following {
		return ErrAlreadyFollow
	}

	if err := s.UserRepo.AddFollower(followerID, followingID); err != nil {
		return err
	}

	// 给被关注者发一条通知，失败不影响关注本身
	_ = s.NotificationRepo.Create(&models.Notification{
		UserID:  followingID,
		Content: fmt.Sprintf("%s 关注了你", follower.Username),
	})
	return nil
}

// Unfollow 取消关注
func (s *UserService) Unfollow(followerID, followingID uint) error {
	err := s.UserRepo.RemoveFollower(followerID, followingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFollowing
	}
	return err
}

// List 用户列表
func (s *UserService) List(limit, offset int) ([]models.User, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return s.UserRepo.List(limit, offset)
}

// SearchIDs 按关键字搜索用户 ID
func (s *UserService) SearchIDs(keyword string) ([]uint, error) {
	return s.UserRepo.SearchIDsByKeyword(keyword)
}

// ActiveIDs 过滤活跃用户 ID
func (s *UserService) ActiveIDs(ids []uint) ([]uint, error) {
	return s.UserRepo.ActiveIDs(ids)
}

// CountActive 活跃用户数
func (s *UserService) CountActive() (int64, error) {
	return s.UserRepo.CountActive()
}

// SortBy 在给定 ID 集内按维度排序，未知维度返回 ErrNotFound
func (s *UserService) SortBy(dimension string, ids []uint) ([]uint, error) {
	clause, ok := repositories.UserSortClause(dimension)
	if !ok {
		return nil, fmt.Errorf("未知排序维度 %q: %w", dimension, ErrNotFound)
	}
	if len(ids) == 0 {
		return []uint{}, nil
	}
	return s.UserRepo.SortIDs(ids, clause)
}
