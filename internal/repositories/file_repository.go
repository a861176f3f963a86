package repositories

import (
	"gorm.io/gorm"

	"github.com/klpbbs/forum/internal/models"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create 保存文件记录
func (r *FileRepository) Create(file *models.File) error {
	return r.db.Create(file).Error
}

// GetByID 根据 ID 获取文件记录
func (r *FileRepository) GetByID(id uint) (*models.File, error) {
	var file models.File
	if err := r.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByUploader 获取用户上传的全部文件
func (r *FileRepository) ListByUploader(uploaderID uint) ([]models.File, error) {
	var files []models.File
	err := r.db.Where("uploader_id = ?", uploaderID).Order("uploaded_at desc").Find(&files).Error
	return files, err
}
