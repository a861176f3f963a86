package models

import "time"

// Role 角色模型，通过 user_roles 中间表挂到用户
type Role struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:200" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

func (Role) TableName() string {
	return "roles"
}
