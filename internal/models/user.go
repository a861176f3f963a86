package models

import "time"

// 用户状态
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
	UserStatusBanned   = "BANNED"
	UserStatusDeleted  = "DELETED"
)

// User 用户模型
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	// 手机号唯一性在服务层校验，允许多个未填手机号的用户
	Phone        string `gorm:"size:20;index" json:"phone"`
	PasswordHash string `gorm:"not null" json:"-"`

	Nickname  string `gorm:"size:50" json:"nickname"`
	Avatar    string `gorm:"size:200" json:"avatar"`
	Signature string `gorm:"size:500" json:"signature"`
	Gender    string `gorm:"size:10" json:"gender"`
	Location  string `gorm:"size:100" json:"location"`

	Status     string `gorm:"size:20;default:ACTIVE" json:"status"` // ACTIVE, INACTIVE, BANNED, DELETED
	Level      int    `gorm:"default:1" json:"level"`
	Points     int    `gorm:"default:0" json:"points"`
	Reputation int    `gorm:"default:0" json:"reputation"`

	FollowersCount  int `gorm:"default:0" json:"followers_count"`
	FollowingsCount int `gorm:"default:0" json:"followings_count"`
	PostsCount      int `gorm:"default:0" json:"posts_count"`
	CommentsCount   int `gorm:"default:0" json:"comments_count"`
	LikesCount      int `gorm:"default:0" json:"likes_count"`
	MessagesCount   int `gorm:"default:0" json:"messages_count"`

	IsOnline         bool       `gorm:"default:false" json:"is_online"`
	LastLoginTime    *time.Time `json:"last_login_time"`
	LastCheckin      *time.Time `json:"last_checkin"` // 只比较日期，用于每日签到
	ResetToken       string     `gorm:"size:64;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserFollower 关注关系中间表，确保创建联合主键
type UserFollower struct {
	FollowerID  uint      `gorm:"primaryKey" json:"follower_id"`
	FollowingID uint      `gorm:"primaryKey" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (UserFollower) TableName() string {
	return "user_followers"
}
