package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
)

type PostService struct {
	PostRepo *repositories.PostRepository
}

func NewPostService(postRepo *repositories.PostRepository) *PostService {
	return &PostService{PostRepo: postRepo}
}

// CreatePostRequest 创建/更新帖子请求
type CreatePostRequest struct {
	Title      string `json:"title" binding:"required"`
	Summary    string `json:"summary"`
	Tags       string `json:"tags"`
	Keywords   string `json:"keywords"`
	Category   string `json:"category"`
	Type       string `json:"type"`
	CoverImage string `json:"cover_image"`
}

// Create 创建帖子，默认 DRAFT 状态，计数器清零
func (s *PostService) Create(authorID uint, req *CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		Title:      req.Title,
		Summary:    req.Summary,
		Tags:       req.Tags,
		Keywords:   req.Keywords,
		Category:   req.Category,
		Type:       req.Type,
		CoverImage: req.CoverImage,
		AuthorID:   authorID,
		Status:     models.PostStatusDraft,
	}

	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePostRequest 整体覆盖可编辑字段
type UpdatePostRequest struct {
	Title      string `json:"title" binding:"required"`
	Summary    string `json:"summary"`
	Status     string `json:"status"`
	Type       string `json:"type"`
	Category   string `json:"category"`
	Tags       string `json:"tags"`
	Keywords   string `json:"keywords"`
	CoverImage string `json:"cover_image"`
	AuthorID   uint   `json:"author_id"`
}

// Update 整体覆盖可编辑字段，目标必须已存在
func (s *PostService) Update(postID uint, req *UpdatePostRequest) (*models.Post, error) {
	post, err := s.PostRepo.GetByID(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	post.Title = req.Title
	post.Summary = req.Summary
	post.Status = req.Status
	post.Type = req.Type
	post.Category = req.Category
	post.Tags = req.Tags
	post.Keywords = req.Keywords
	post.CoverImage = req.CoverImage
	if req.AuthorID != 0 {
		post.AuthorID = req.AuthorID
	}

	if err := s.PostRepo.Save(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Publish 无条件置为 PUBLISHED 并记录发布时间
// 状态流转不做约束（已删除的帖子也可以再发布），与既有行为保持一致
func (s *PostService) Publish(postID uint) (*models.Post, error) {
	return s.setStatus(postID, models.PostStatusPublished, true)
}

// Unpublish 无条件置为 UNPUBLISHED
func (s *PostService) Unpublish(postID uint) (*models.Post, error) {
	return s.setStatus(postID, models.PostStatusUnpublished, false)
}

// Delete 软删除：仅置状态为 DELETED，记录不物理删除
func (s *PostService) Delete(postID uint) (*models.Post, error) {
	return s.setStatus(postID, models.PostStatusDeleted, false)
}

func (s *PostService) setStatus(postID uint, status string, stampPublish bool) (*models.Post, error) {
	post, err := s.PostRepo.GetByID(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	post.Status = status
	if stampPublish {
		now := time.Now()
		post.PublishTime = &now
	}

	if err := s.PostRepo.Save(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetByID 获取帖子，每次读取都使浏览数 +1
func (s *PostService) GetByID(postID uint) (*models.Post, error) {
	post, err := s.PostRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.PostRepo.IncrementViews(postID); err != nil {
		return nil, err
	}
	post.Views++
	return post, nil
}

// Search 关键字搜索（标题/摘要/关键词）
func (s *PostService) Search(keyword string) ([]models.Post, error) {
	return s.PostRepo.FindByKeyword(keyword)
}

// ByCategoryAndStatus 按分类和状态查询
func (s *PostService) ByCategoryAndStatus(category, status string) ([]models.Post, error) {
	return s.PostRepo.FindByCategoryAndStatus(category, status)
}

// ByTag 按标签查询
func (s *PostService) ByTag(tag string) ([]models.Post, error) {
	return s.PostRepo.FindByTag(tag)
}

// ByAuthor 按作者查询
func (s *PostService) ByAuthor(authorID uint) ([]models.Post, error) {
	return s.PostRepo.FindByAuthor(authorID)
}

// ByStatus 按状态查询
func (s *PostService) ByStatus(status string) ([]models.Post, error) {
	return s.PostRepo.FindByStatus(status)
}

// ByType 按类型查询
func (s *PostService) ByType(postType string) ([]models.Post, error) {
	return s.PostRepo.FindByType(postType)
}

// List 帖子列表
func (s *PostService) List(limit, offset int) ([]models.Post, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return s.PostRepo.List(limit, offset)
}

// Like 点赞数 +1
func (s *PostService) Like(postID uint) error {
	return s.increment(postID, s.PostRepo.IncrementLikes)
}

// Share 分享数 +1
func (s *PostService) Share(postID uint) error {
	return s.increment(postID, s.PostRepo.IncrementShares)
}

// Collect 收藏数 +1
func (s *PostService) Collect(postID uint) error {
	return s.increment(postID, s.PostRepo.IncrementCollections)
}

func (s *PostService) increment(postID uint, fn func(uint) error) error {
	if _, err := s.PostRepo.GetByID(postID); err != nil {
		return ErrPostNotFound
	}
	return fn(postID)
}

// SortBy 在给定 ID 集内按维度降序排序，未知维度返回 ErrNotFound
func (s *PostService) SortBy(dimension string, ids []uint) ([]uint, error) {
	column, ok := repositories.PostSortColumn(dimension)
	if !ok {
		return nil, fmt.Errorf("未知排序维度 %q: %w", dimension, ErrNotFound)
	}
	if len(ids) == 0 {
		return []uint{}, nil
	}
	return s.PostRepo.SortIDsBy(column, ids)
}
