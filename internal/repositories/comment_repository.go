package repositories

import (
	"gorm.io/gorm"

	"github.com/klpbbs/forum/internal/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// CreateWithCounters 创建评论并同步帖子评论数与作者评论计数，单事务完成
func (r *CommentRepository) CreateWithCounters(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comments", gorm.Expr("comments + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", comment.AuthorID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

// ListByPost 获取帖子下的评论，按时间正序
func (r *CommentRepository) ListByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at asc").Find(&comments).Error
	return comments, err
}
