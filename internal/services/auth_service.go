package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
	"github.com/klpbbs/forum/internal/utils"
	pkgutils "github.com/klpbbs/forum/pkg/utils"
)

// 每日签到奖励积分
const checkInPoints = 10

type AuthService struct {
	UserRepo *repositories.UserRepository
	Tokens   *pkgutils.TokenManager
}

func NewAuthService(userRepo *repositories.UserRepository, tokens *pkgutils.TokenManager) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Tokens:   tokens,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Register 注册用户，默认 level=1、points=0、离线、状态 ACTIVE
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if !utils.ValidateUserName(req.Username) {
		return nil, errors.New("invalid username format")
	}
	if !utils.ValidateEmail(req.Email) {
		return nil, errors.New("invalid email format")
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, errors.New("password must be at least 8 characters")
	}

	existsUsername, err := s.UserRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existsUsername {
		return nil, ErrUserExists
	}

	existsEmail, err := s.UserRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existsEmail {
		return nil, ErrUserExists
	}

	if req.Phone != "" {
		existsPhone, err := s.UserRepo.ExistsByPhone(req.Phone)
		if err != nil {
			return nil, err
		}
		if existsPhone {
			return nil, ErrUserExists
		}
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		Status:       models.UserStatusActive,
		Level:        1,
		Points:       0,
		IsOnline:     false,
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login 按用户名查找并校验密码哈希
// "用户不存在"和"密码错误"统一返回 ErrInvalidCredentials，避免用户枚举
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.UserRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.IsOnline = true
	user.LastLoginTime = &now
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	return &LoginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}

// Logout 将用户置为离线
func (s *AuthService) Logout(userID uint) error {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	user.IsOnline = false
	return s.UserRepo.Update(user)
}

// ForgotPassword 签发密码重置令牌，有效期 1 天
func (s *AuthService) ForgotPassword(email string) (*models.User, error) {
	user, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	expiry := time.Now().Add(24 * time.Hour)
	user.ResetToken = uuid.NewString()
	user.ResetTokenExpiry = &expiry

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword 仅当令牌过期时间严格晚于当前时间才接受，成功后清除令牌
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if !utils.ValidatePassword(newPassword) {
		return errors.New("password must be at least 8 characters")
	}

	user, err := s.UserRepo.GetByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenNotFound
		}
		return err
	}

	if user.ResetTokenExpiry == nil || !user.ResetTokenExpiry.After(time.Now()) {
		return ErrTokenExpired
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	return s.UserRepo.Update(user)
}

// CheckIn 每日签到，同一自然日只发一次积分
func (s *AuthService) CheckIn(userID uint) (*models.User, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	if user.LastCheckin != nil && sameDay(*user.LastCheckin, now) {
		return nil, ErrAlreadyCheckedIn
	}

	user.Points += checkInPoints
	user.LastCheckin = &now
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Upgrade 消耗积分升级，消耗量必须为正，余额不足时返回显式错误
func (s *AuthService) Upgrade(userID uint, points int) (*models.User, error) {
	if points <= 0 {
		return nil, ErrInvalidPointsCost
	}

	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.Points < points {
		return nil, ErrInsufficientPoints
	}

	user.Points -= points
	user.Level++
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
