package repositories

import (
	"gorm.io/gorm"

	"github.com/klpbbs/forum/internal/models"
)

// 帖子排序维度 → 排序列，均为降序单列排序
var postSortColumns = map[string]string{
	"views":        "views",
	"likes":        "likes",
	"comments":     "comments",
	"shares":       "shares",
	"collections":  "collections",
	"publish-time": "publish_time",
	"update-time":  "updated_at",
	"create-time":  "created_at",
}

// PostSortColumn 返回排序维度对应的列名
func PostSortColumn(dimension string) (string, bool) {
	col, ok := postSortColumns[dimension]
	return col, ok
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create 创建帖子
func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID 根据 ID 获取帖子
func (r *PostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Save 保存整条帖子记录
func (r *PostRepository) Save(post *models.Post) error {
	return r.db.Save(post).Error
}

// List 获取帖子列表
func (r *PostRepository) List(limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Order("created_at desc").Find(&posts).Error
	return posts, total, err
}

// FindByKeyword 标题/摘要/关键词子串匹配
func (r *PostRepository) FindByKeyword(keyword string) ([]models.Post, error) {
	var posts []models.Post
	like := "%" + keyword + "%"
	err := r.db.Where("title LIKE ? OR summary LIKE ? OR keywords LIKE ?", like, like, like).
		Find(&posts).Error
	return posts, err
}

// FindByCategoryAndStatus 按分类和状态查询
func (r *PostRepository) FindByCategoryAndStatus(category, status string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("category = ? AND status = ?", category, status).Find(&posts).Error
	return posts, err
}

// FindByTag 标签包含匹配
func (r *PostRepository) FindByTag(tag string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("tags LIKE ?", "%"+tag+"%").Find(&posts).Error
	return posts, err
}

// FindByAuthor 按作者 ID 查询
func (r *PostRepository) FindByAuthor(authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("author_id = ?", authorID).Find(&posts).Error
	return posts, err
}

// FindByStatus 按状态查询
func (r *PostRepository) FindByStatus(status string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("status = ?", status).Find(&posts).Error
	return posts, err
}

// FindByType 按类型查询
func (r *PostRepository) FindByType(postType string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("type = ?", postType).Find(&posts).Error
	return posts, err
}

// IncrementViews 浏览数 +1，单条 UPDATE 交给数据库保证原子性
func (r *PostRepository) IncrementViews(id uint) error {
	return r.incrementCounter(id, "views")
}

// IncrementLikes 点赞数 +1
func (r *PostRepository) IncrementLikes(id uint) error {
	return r.incrementCounter(id, "likes")
}

// IncrementComments 评论数 +1
func (r *PostRepository) IncrementComments(id uint) error {
	return r.incrementCounter(id, "comments")
}

// IncrementShares 分享数 +1
func (r *PostRepository) IncrementShares(id uint) error {
	return r.incrementCounter(id, "shares")
}

// IncrementCollections 收藏数 +1
func (r *PostRepository) IncrementCollections(id uint) error {
	return r.incrementCounter(id, "collections")
}

func (r *PostRepository) incrementCounter(id uint, column string) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

// SortIDsBy 在给定 ID 集内按列降序返回 ID 序列
func (r *PostRepository) SortIDsBy(column string, ids []uint) ([]uint, error) {
	var out []uint
	err := r.db.Model(&models.Post{}).
		Where("id IN ?", ids).
		Order(column + " DESC").
		Pluck("id", &out).Error
	return out, err
}
