package models

import "time"

// Notification 站内通知
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Content string `gorm:"size:500;not null" json:"content"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
