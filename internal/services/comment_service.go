package services

import (
	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
)

type CommentService struct {
	CommentRepo *repositories.CommentRepository
	PostRepo    *repositories.PostRepository
}

func NewCommentService(commentRepo *repositories.CommentRepository, postRepo *repositories.PostRepository) *CommentService {
	return &CommentService{
		CommentRepo: commentRepo,
		PostRepo:    postRepo,
	}
}

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create 发表评论，帖子评论数与作者评论计数在同一事务内更新
func (s *CommentService) Create(authorID, postID uint, req *CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.PostRepo.GetByID(postID); err != nil {
		return nil, ErrPostNotFound
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	}

	if err := s.CommentRepo.CreateWithCounters(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost 帖子下的评论
func (s *CommentService) ListByPost(postID uint) ([]models.Comment, error) {
	if _, err := s.PostRepo.GetByID(postID); err != nil {
		return nil, ErrPostNotFound
	}
	return s.CommentRepo.ListByPost(postID)
}
