package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/klpbbs/forum/internal/models"
	"github.com/klpbbs/forum/internal/repositories"
)

type FileService struct {
	FileRepo  *repositories.FileRepository
	UserRepo  *repositories.UserRepository
	uploadDir string
}

func NewFileService(fileRepo *repositories.FileRepository, userRepo *repositories.UserRepository, uploadDir string) *FileService {
	return &FileService{
		FileRepo:  fileRepo,
		UserRepo:  userRepo,
		uploadDir: uploadDir,
	}
}

// Upload 将上传内容写入上传目录并记录到数据库
// 文件名做 Base 清洗防止路径穿越；同名文件后写覆盖先写
func (s *FileService) Upload(header *multipart.FileHeader, uploaderID uint) (*models.File, error) {
	if _, err := s.UserRepo.GetByID(uploaderID); err != nil {
		return nil, ErrUserNotFound
	}

	filename := filepath.Base(header.Filename)
	if filename == "." || filename == string(filepath.Separator) {
		return nil, fmt.Errorf("非法文件名: %w", ErrIO)
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", ErrIO)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("读取上传内容失败: %w", ErrIO)
	}
	defer src.Close()

	path := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("写入文件失败: %w", ErrIO)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("写入文件失败: %w", ErrIO)
	}

	file := &models.File{
		Filename:   filename,
		Path:       path,
		UploaderID: uploaderID,
		UploadedAt: time.Now(),
	}

	if err := s.FileRepo.Create(file); err != nil {
		return nil, err
	}
	return file, nil
}

// GetByID 获取文件记录
func (s *FileService) GetByID(fileID uint) (*models.File, error) {
	file, err := s.FileRepo.GetByID(fileID)
	if err != nil {
		return nil, ErrFileNotFound
	}
	return file, nil
}

// ListByUploader 用户上传的文件
func (s *FileService) ListByUploader(uploaderID uint) ([]models.File, error) {
	return s.FileRepo.ListByUploader(uploaderID)
}
