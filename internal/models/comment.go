package models

import "time"

// Comment 评论模型
type Comment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PostID   uint   `gorm:"not null;index" json:"post_id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Content  string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`

	Post   *Post `gorm:"foreignKey:PostID" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
