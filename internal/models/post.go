package models

import "time"

// 帖子状态（软删除：DELETED 只是状态标记，记录永不物理删除）
const (
	PostStatusDraft       = "DRAFT"
	PostStatusPublished   = "PUBLISHED"
	PostStatusUnpublished = "UNPUBLISHED"
	PostStatusDeleted     = "DELETED"
)

// Post 帖子模型
type Post struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title      string `gorm:"size:200;not null" json:"title"`
	Summary    string `gorm:"size:500" json:"summary"`
	Tags       string `gorm:"size:200" json:"tags"`
	Keywords   string `gorm:"size:200" json:"keywords"`
	Category   string `gorm:"size:50;index" json:"category"`
	Type       string `gorm:"size:50;index" json:"type"`
	CoverImage string `gorm:"size:200" json:"cover_image"`

	AuthorID uint  `gorm:"not null;index" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"-"`

	Status string `gorm:"size:20;default:DRAFT;index" json:"status"` // DRAFT, PUBLISHED, UNPUBLISHED, DELETED

	Views       int64 `gorm:"default:0" json:"views"`
	Likes       int64 `gorm:"default:0" json:"likes"`
	Comments    int64 `gorm:"default:0" json:"comments"`
	Shares      int64 `gorm:"default:0" json:"shares"`
	Collections int64 `gorm:"default:0" json:"collections"`

	PublishTime *time.Time `json:"publish_time"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
